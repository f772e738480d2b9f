package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri" validate:"required"`
	Database string        `yaml:"database" validate:"required"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CacheConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Size     int           `yaml:"size"`
	TTL      time.Duration `yaml:"ttl"`
	Compress bool          `yaml:"compress"`
}

// ResultsConfig controls how category names are matched by the two
// result schemas and which calendar "today" refers to.
type ResultsConfig struct {
	Timezone               string `yaml:"timezone"`
	GroupedCaseInsensitive bool   `yaml:"groupedCaseInsensitive"`
	FlatCaseInsensitive    bool   `yaml:"flatCaseInsensitive"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwtSecret" validate:"required|minLen:8"`
	TokenTTL  time.Duration `yaml:"tokenTTL"`
	OTPTTL    time.Duration `yaml:"otpTTL"`
}

type MailConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type AppVersionConfig struct {
	MinimumRequiredVersion string `yaml:"minimumRequiredVersion"`
	LatestVersion          string `yaml:"latestVersion"`
	ForceUpdate            bool   `yaml:"forceUpdate"`
	ApkURL                 string `yaml:"apkUrl"`
}

type SchedulerConfig struct {
	Enabled      bool   `yaml:"enabled"`
	CategoryName string `yaml:"categoryname"`
	Key          string `yaml:"key"`
	Mode         string `yaml:"mode"`
	Target       string `yaml:"target" validate:"in:grouped,flat"`
}

type RateLimitConfig struct {
	AuthRequests int           `yaml:"authRequests"`
	AuthWindow   time.Duration `yaml:"authWindow"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName    string
	Debug      bool
	Path       string
	WebServer  Server           `yaml:"webServer"`
	Logger     LoggerConfig     `yaml:"logger"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Cache      CacheConfig      `yaml:"cache"`
	Results    ResultsConfig    `yaml:"results"`
	Auth       AuthConfig       `yaml:"auth"`
	Mail       MailConfig       `yaml:"mail"`
	AppVersion AppVersionConfig `yaml:"appVersion"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	RateLimit  RateLimitConfig  `yaml:"rateLimit"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}
