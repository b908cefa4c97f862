package common

const (
	SrcFileExtension = ".kd"
	ConfigFileName   = "keide.toml"
	KeidecVersion    = "0.1.0"
)

// DefaultModuleName is the IR module name used when neither the config nor
// the command line provides one.
const DefaultModuleName = "mi_programa"
