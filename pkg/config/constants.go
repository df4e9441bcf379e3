package config

const (
	EnvPrefix = "matrimony"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "MATRIMONY_APP_ENV"
	EnvPort       = "MATRIMONY_APP_PORT"
	EnvDBDSN      = "MATRIMONY_DB_DSN"
	EnvDBHost     = "MATRIMONY_DB_HOST"
	EnvDBUser     = "MATRIMONY_DB_USER"
	EnvDBName     = "MATRIMONY_DB_NAME"
	EnvRedisURL   = "MATRIMONY_REDIS_URL"
	EnvJWTSecret  = "MATRIMONY_JWT_SECRET"
	EnvJWTIssuer  = "MATRIMONY_JWT_ISSUER"
	EnvJWTExpMins = "MATRIMONY_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
