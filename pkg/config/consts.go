package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// envconfig tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SMILEROUTE_DB_DSN"
	EnvDBHost = "SMILEROUTE_DB_HOST"
	EnvDBUser = "SMILEROUTE_DB_USER"
	EnvDBName = "SMILEROUTE_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
