// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for file parsing, evaluation of `locals`, and translation
// of workflow and task blocks into the format-agnostic declaration model.
//
// A declaration file looks like:
//
//	workers_count = local.workers
//
//	locals {
//	  workers = 4
//	  base    = 10
//	}
//
//	workflow "etl" {
//	  scheduled_at = local.base
//
//	  task "extract" {
//	    description = "pull rows"
//	    cost        = 3
//	  }
//	  task "load" {
//	    cost       = max(2, local.workers)
//	    depends_on = ["extract"]
//	  }
//	}
package hcl
