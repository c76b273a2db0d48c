package config

const (
	// EnvPrefix namespaces every ShopLite environment variable.
	EnvPrefix = "shoplite"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvDBDSN  = "SHOPLITE_DB_DSN"
	EnvDBHost = "SHOPLITE_DB_HOST"
	EnvDBUser = "SHOPLITE_DB_USER"
	EnvDBName = "SHOPLITE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
