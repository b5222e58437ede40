package okta

// Terraform resource types of the okta/okta provider.
const (
	ResourceUser                = "okta_user"
	ResourceGroup               = "okta_group"
	ResourceAppGroupAssignments = "okta_app_group_assignments"
	applicationResourcePrefix   = "okta_app_"
	groupTypeOkta               = "OKTA_GROUP"
)

// signOnModes maps application sign-on modes to okta_app_* suffixes.
var signOnModes = map[string]string{
	"AUTO_LOGIN":            "auto_login",
	"BASIC_AUTH":            "basic_auth",
	"BOOKMARK":              "bookmark",
	"BROWSER_PLUGIN":        "swa",
	"OPENID_CONNECT":        "oauth",
	"SAML_1_1":              "saml",
	"SAML_2_0":              "saml",
	"SECURE_PASSWORD_STORE": "secure_password_store",
	"WS_FEDERATION":         "ws_federation",
}

// builtinApplications are platform-owned apps, by internal name.
var builtinApplications = map[string]struct{}{
	"okta_enduser":        {}, // Okta Dashboard
	"okta_browser_plugin": {},
	"saasure":             {}, // Okta Admin Console
}

// MapApplicationType maps a sign-on mode to its Terraform resource type.
func MapApplicationType(signOnMode string) (string, bool) {
	suffix, ok := signOnModes[signOnMode]
	if !ok {
		return "", false
	}
	return applicationResourcePrefix + suffix, true
}

// IsBuiltinApplication reports whether an internal app name is platform owned.
func IsBuiltinApplication(name string) bool {
	_, ok := builtinApplications[name]
	return ok
}
