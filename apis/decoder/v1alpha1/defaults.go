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

package v1alpha1

import (
	"k8s.io/utils/ptr"
)

var (
	DefaultPopulationSize  int32 = 320
	DefaultStagnationLimit int32 = 52
	DefaultMaxGenerations  int32 = 800
	DefaultParallelism     int32 = 1
	DefaultCacheSize       int32 = 1 << 18
)

// SetDefaults_DecoderConfiguration sets the default parameters for a decoding run.
func SetDefaults_DecoderConfiguration(obj *DecoderConfiguration) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = DecoderConfigurationKind
	}
	if obj.PopulationSize == nil {
		obj.PopulationSize = ptr.To(DefaultPopulationSize)
	}
	if obj.StagnationLimit == nil {
		obj.StagnationLimit = ptr.To(DefaultStagnationLimit)
	}
	if obj.MaxGenerations == nil {
		obj.MaxGenerations = ptr.To(DefaultMaxGenerations)
	}
	if obj.Parallelism == nil {
		obj.Parallelism = ptr.To(DefaultParallelism)
	}
	if obj.CacheSize == nil {
		obj.CacheSize = ptr.To(DefaultCacheSize)
	}
}
