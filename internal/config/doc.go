// Package config provides configuration parsing for the weft CLI.
//
// The configuration is stored in weft.json at the project root.
// This package handles loading, saving, and validating configuration.
//
// # Configuration File Structure
//
//	{
//	  "debug": false,
//	  "metrics": true,
//	  "tracer": "weft",
//	  "bench": {
//	    "boxes": 1000,
//	    "writes": 10000,
//	    "listSize": 500,
//	    "iterations": 200
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Tracer:", cfg.Tracer)
package config
