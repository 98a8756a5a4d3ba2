package common

// Connection defaults shared by the store, the launcher and the CLI.
const (
	DefaultPort          = 3389
	DefaultDesktopWidth  = 1920
	DefaultDesktopHeight = 1080
	DefaultColorDepth    = 32

	// CredentialTargetPrefix scopes staged OS credentials to the
	// remote-desktop service: "TERMSRV/<hostname>".
	CredentialTargetPrefix = "TERMSRV"

	// CopySuffix is appended to the name of a duplicated connection.
	CopySuffix = " (Copy)"

	// SaltSettingKey is the settings key holding the base64 encryption salt.
	SaltSettingKey = "encryption_salt"
)
