// Package config provides configuration parsing for Zyte projects.
//
// The configuration is stored in zyte.json at the project root.
//
// # Configuration File Structure
//
//	{
//	  "name": "my-site",
//	  "port": 3000,
//	  "host": "localhost",
//	  "paths": {
//	    "routes": "app/routes",
//	    "app": "app/app.js",
//	    "public": "public",
//	    "output": "dist"
//	  },
//	  "cache": {
//	    "enabled": true,
//	    "maxAge": "60s",
//	    "prewarm": true
//	  },
//	  "deploy": {
//	    "bucket": "my-site-static",
//	    "region": "us-east-1"
//	  },
//	  "siteUrl": "https://example.com"
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Port:", cfg.Port)
package config
