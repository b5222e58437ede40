// Package credentials reads the Okta credentials of an environment directory.
//
// Each environment directory (e.g. preview/, production/) carries a SOPS
// encrypted terraform.plan.enc.tfvars.json holding the okta_* variables used
// by Terraform. The file is decrypted with the sops CLI and its values take
// precedence over the process configuration.
package credentials
