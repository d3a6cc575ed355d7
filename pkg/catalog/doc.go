// Package catalog loads unit catalogs from YAML or JSON documents so the
// built-in table can be extended or replaced without recompiling.
//
// A document lists quantities in display order. Setting `extends: default`
// merges them onto units.Default(): quantities with a known name replace the
// built-in entry, new ones are appended.
//
//	extends: default
//	quantities:
//	  - name: Data
//	    primary: MB
//	    secondary: kB
//	    units:
//	      - {key: MB, factor: 1}
//	      - {key: kB, factor: 1000}
package catalog
