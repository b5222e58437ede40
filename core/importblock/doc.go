// Package importblock renders import directives as Terraform import blocks.
//
//	import {
//	  to = okta_group.engineering_team
//	  id = "00g1abcd"
//	}
//
// Rendering is pure formatting. Identifier validity is the sanitizer's job and
// is not re-checked here.
package importblock
