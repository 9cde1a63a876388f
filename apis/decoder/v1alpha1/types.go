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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	// GroupName is the group name used for the decoder configuration and reports.
	GroupName = "decoder.substitution.io"

	DecoderConfigurationKind = "DecoderConfiguration"
	DecodeReportKind         = "DecodeReport"
)

// SchemeGroupVersion is the group version of every type in this package.
var SchemeGroupVersion = schema.GroupVersion{Group: GroupName, Version: "v1alpha1"}

// DecoderConfiguration holds the parameters of a genetic decoding run.
// Unset fields are filled in by SetDefaults_DecoderConfiguration.
type DecoderConfiguration struct {
	metav1.TypeMeta `json:",inline"`

	// PopulationSize is the number of candidate keys per generation. It must be
	// a positive multiple of 10 so the elite fifth can be paired for crossover.
	PopulationSize *int32 `json:"populationSize,omitempty"`

	// StagnationLimit is the number of generations without a strict
	// improvement of the best score after which the search stops.
	StagnationLimit *int32 `json:"stagnationLimit,omitempty"`

	// MaxGenerations caps the number of breeding rounds.
	MaxGenerations *int32 `json:"maxGenerations,omitempty"`

	// Seed makes a run reproducible. When unset a random seed is drawn.
	Seed *uint64 `json:"seed,omitempty"`

	// Parallelism is the number of workers scoring a generation.
	Parallelism *int32 `json:"parallelism,omitempty"`

	// CacheSize bounds the number of memoized fitness scores. 0 disables the cache.
	CacheSize *int32 `json:"cacheSize,omitempty"`
}

// DecodeReport records the configuration and outcome of a decoding run
type DecodeReport struct {
	metav1.TypeMeta `json:",inline"`

	Spec   DecodeReportSpec   `json:"spec"`
	Status DecodeReportStatus `json:"status"`
}

// DecodeReportSpec describes what was asked for
type DecodeReportSpec struct {
	// Configuration is the effective configuration after defaulting
	Configuration DecoderConfiguration `json:"configuration"`

	// EncodedFile and CorpusFile are the input paths, if the run read files
	EncodedFile string `json:"encodedFile,omitempty"`
	CorpusFile  string `json:"corpusFile,omitempty"`

	// CiphertextTokens is the number of scored ciphertext tokens
	CiphertextTokens int `json:"ciphertextTokens"`

	// VocabularySize is the number of distinct corpus tokens
	VocabularySize int `json:"vocabularySize"`
}

// DecodeReportStatus describes what the run found
type DecodeReportStatus struct {
	// +kubebuilder:validation:Enum=Converged;Exhausted;Interrupted
	Phase DecodePhase `json:"phase"`

	// Generations is the number of scored generations
	Generations int `json:"generations"`

	// BestScore is the fitness of Key
	BestScore float64 `json:"bestScore"`

	// Key is the best key as its 26 ciphertext images in plaintext order
	Key string `json:"key"`

	// KeyPairs lists Key as "plain -> cipher" entries sorted by plaintext letter
	KeyPairs []string `json:"keyPairs"`

	// ScoreHistory is the best score of every generation
	ScoreHistory []float64 `json:"scoreHistory,omitempty"`

	// Evaluations is the number of fitness computations, CacheHits the number
	// of scores served from the cache instead
	Evaluations int64 `json:"evaluations"`
	CacheHits   int64 `json:"cacheHits,omitempty"`

	StartedAt  *metav1.Time `json:"startedAt,omitempty"`
	FinishedAt *metav1.Time `json:"finishedAt,omitempty"`
}

// DecodePhase is the terminal state of a run
type DecodePhase string

const (
	// DecodePhaseConverged indicates the best score stopped improving
	DecodePhaseConverged DecodePhase = "Converged"

	// DecodePhaseExhausted indicates the generation cap was reached
	DecodePhaseExhausted DecodePhase = "Exhausted"

	// DecodePhaseInterrupted indicates the run was cancelled
	DecodePhaseInterrupted DecodePhase = "Interrupted"
)
