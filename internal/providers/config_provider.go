package providers

import (
	"fmt"
	"path/filepath"
	"resultsd/internal/structures"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	setDefaults(v)

	v.BindEnv("logger.level", "RESULTSD_LOG_LEVEL")
	v.BindEnv("mongo.uri", "RESULTSD_MONGO_URI")
	v.BindEnv("mongo.database", "RESULTSD_MONGO_DATABASE")
	v.BindEnv("cache.enabled", "RESULTSD_CACHE_ENABLED")
	v.BindEnv("cache.size", "RESULTSD_CACHE_SIZE")
	v.BindEnv("cache.ttl", "RESULTSD_CACHE_TTL")
	v.BindEnv("auth.jwtSecret", "RESULTSD_JWT_SECRET")
	v.BindEnv("mail.username", "RESULTSD_MAIL_USERNAME")
	v.BindEnv("mail.password", "RESULTSD_MAIL_PASSWORD")
	v.BindEnv("appVersion.minimumRequiredVersion", "MINIMUM_REQUIRED_VERSION")
	v.BindEnv("appVersion.latestVersion", "LATEST_VERSION")
	v.BindEnv("appVersion.forceUpdate", "FORCE_UPDATE")
	v.BindEnv("appVersion.apkUrl", "APK_URL")
	v.BindEnv("scheduler.enabled", "RESULTSD_SCHEDULER_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ResultsDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mongo.timeout", 10*time.Second)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.compress", true)
	v.SetDefault("cache.ttl", 50*time.Second)
	v.SetDefault("results.timezone", "Local")
	v.SetDefault("results.groupedCaseInsensitive", false)
	v.SetDefault("results.flatCaseInsensitive", true)
	v.SetDefault("auth.tokenTTL", 24*time.Hour)
	v.SetDefault("auth.otpTTL", 10*time.Minute)
	v.SetDefault("mail.port", 587)
	v.SetDefault("appVersion.minimumRequiredVersion", "2.0.0")
	v.SetDefault("appVersion.latestVersion", "2.0.0")
	v.SetDefault("appVersion.forceUpdate", true)
	v.SetDefault("appVersion.apkUrl", "https://mydomain.com/app-v2.apk")
	v.SetDefault("scheduler.categoryname", "Minidiswar")
	v.SetDefault("scheduler.key", "md-9281")
	v.SetDefault("scheduler.mode", "auto")
	v.SetDefault("scheduler.target", "grouped")
	v.SetDefault("rateLimit.authRequests", 20)
	v.SetDefault("rateLimit.authWindow", time.Minute)
}
