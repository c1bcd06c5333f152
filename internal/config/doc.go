// Package config provides configuration parsing for vtree.
//
// The configuration is stored in vtree.json, looked up in the working
// directory and its parents, or passed explicitly with --config.
//
// # Configuration File Structure
//
//	{
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "render": {
//	    "pretty": true,
//	    "indent": "  "
//	  },
//	  "inspect": {
//	    "maxDepth": 16
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "namespace": "vtree"
//	  },
//	  "tracing": {
//	    "tracerName": "github.com/vango-dev/vtree"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    errors.PrintError(os.Stderr, err)
//	    os.Exit(1)
//	}
//	logger := cfg.NewLogger(os.Stderr)
package config
