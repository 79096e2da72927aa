package config

import "github.com/spf13/viper"

// Logger logger config struct
type Logger struct {
	Level           int
	Format          string
	Output          string
	OutputFile      string
	Desensitization *Desensitization
}

// Desensitization holds log masking settings
type Desensitization struct {
	Enabled         bool
	SensitiveFields []string
	MaskChar        string
	FixedMaskLength int
}

// Default sensitive field names
var defaultSensitiveFields = []string{
	"password", "token", "refresh_token", "refreshtoken",
	"authorization", "secret", "client_secret",
}

func getLoggerConfig(v *viper.Viper) *Logger {
	fields := v.GetStringSlice("logger.desensitization.sensitive_fields")
	if len(fields) == 0 {
		fields = defaultSensitiveFields
	}

	return &Logger{
		Level:      getIntOrDefault(v, "logger.level", 4),
		Format:     getStringOrDefault(v, "logger.format", "json"),
		Output:     getStringOrDefault(v, "logger.output", "stdout"),
		OutputFile: v.GetString("logger.output_file"),
		Desensitization: &Desensitization{
			Enabled:         getBoolOrDefault(v, "logger.desensitization.enabled", true),
			SensitiveFields: fields,
			MaskChar:        getStringOrDefault(v, "logger.desensitization.mask_char", "*"),
			FixedMaskLength: getIntOrDefault(v, "logger.desensitization.fixed_mask_length", 6),
		},
	}
}
