// Package jobfile loads extraction jobs declared in HCL files.
//
// A job file holds one or more job blocks:
//
//	job "head" {
//	  input       = "${env.DATA_DIR}/rows.tsv"
//	  mode        = "split"
//	  split_count = 2
//	  output      = "head.txt"
//	}
//
// Expressions can read the process environment through the env object and
// call a small set of string functions (upper, lower, trimspace, format,
// join, coalesce). Relative input and output paths resolve against the
// directory of the file that declares the job.
package jobfile
