package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "sellerboard"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvDBDSN  = "SELLERBOARD_DB_DSN"
	EnvDBHost = "SELLERBOARD_DB_HOST"
	EnvDBUser = "SELLERBOARD_DB_USER"
	EnvDBName = "SELLERBOARD_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
