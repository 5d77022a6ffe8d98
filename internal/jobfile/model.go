// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package jobfile

import "github.com/vk/lineextract/internal/extract"

// Job is one fully resolved extraction run.
type Job struct {
	Name       string
	Input      string
	Mode       extract.Mode
	SplitCount int
	Output     string
	Append     bool
	FlushFinal bool

	// Source is the file the job was declared in.
	Source string
}

// fileRoot is a struct used to decode all top-level blocks of a job file.
type fileRoot struct {
	Jobs []*jobBlock `hcl:"job,block"`
}

// jobBlock mirrors the HCL shape of a job before validation.
type jobBlock struct {
	Name       string `hcl:"name,label"`
	Input      string `hcl:"input"`
	Mode       string `hcl:"mode,optional"`
	SplitCount *int   `hcl:"split_count,optional"`
	Output     string `hcl:"output,optional"`
	Append     bool   `hcl:"append,optional"`
	FlushFinal bool   `hcl:"flush_final,optional"`
}
