/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package validation

import (
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/mihai-snyk/substitution-decoder/apis/decoder/v1alpha1"
)

// ValidateDecoderConfiguration validates a defaulted DecoderConfiguration.
func ValidateDecoderConfiguration(cfg *v1alpha1.DecoderConfiguration) field.ErrorList {
	var allErrs field.ErrorList

	if cfg.APIVersion != "" && cfg.APIVersion != v1alpha1.SchemeGroupVersion.String() {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("apiVersion"), cfg.APIVersion, []string{v1alpha1.SchemeGroupVersion.String()}))
	}
	if cfg.Kind != "" && cfg.Kind != v1alpha1.DecoderConfigurationKind {
		allErrs = append(allErrs, field.NotSupported(field.NewPath("kind"), cfg.Kind, []string{v1alpha1.DecoderConfigurationKind}))
	}

	if p := field.NewPath("populationSize"); cfg.PopulationSize == nil {
		allErrs = append(allErrs, field.Required(p, ""))
	} else if n := *cfg.PopulationSize; n <= 0 || n%10 != 0 {
		allErrs = append(allErrs, field.Invalid(p, n, "must be a positive multiple of 10"))
	}

	if p := field.NewPath("stagnationLimit"); cfg.StagnationLimit == nil {
		allErrs = append(allErrs, field.Required(p, ""))
	} else if *cfg.StagnationLimit <= 0 {
		allErrs = append(allErrs, field.Invalid(p, *cfg.StagnationLimit, "must be greater than 0"))
	}

	if p := field.NewPath("maxGenerations"); cfg.MaxGenerations == nil {
		allErrs = append(allErrs, field.Required(p, ""))
	} else if *cfg.MaxGenerations < 0 {
		allErrs = append(allErrs, field.Invalid(p, *cfg.MaxGenerations, "must not be negative"))
	}

	if cfg.Parallelism != nil && *cfg.Parallelism <= 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("parallelism"), *cfg.Parallelism, "must be greater than 0"))
	}
	if cfg.CacheSize != nil && *cfg.CacheSize < 0 {
		allErrs = append(allErrs, field.Invalid(field.NewPath("cacheSize"), *cfg.CacheSize, "must not be negative"))
	}

	return allErrs
}
