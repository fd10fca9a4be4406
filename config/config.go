package config

type AppConfig struct {
	APIPort     string `env:"PORT,required" envDefault:"11000"`
	APIKey      string `env:"API_KEY,required"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
}

type DatabaseConfig struct {
	Host            string `env:"REPLYRADAR_POSTGRES_HOST,required"`
	Port            string `env:"REPLYRADAR_POSTGRES_PORT,required"`
	User            string `env:"REPLYRADAR_POSTGRES_USER,required"`
	DBName          string `env:"REPLYRADAR_POSTGRES_DB_NAME,required"`
	Password        string `env:"REPLYRADAR_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"REPLYRADAR_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"REPLYRADAR_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"REPLYRADAR_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"REPLYRADAR_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"REPLYRADAR_POSTGRES_SSL_MODE"`
}

type GoogleOAuthConfig struct {
	ClientID     string `env:"GOOGLE_OAUTH_CLIENT_ID,required"`
	ClientSecret string `env:"GOOGLE_OAUTH_CLIENT_SECRET,required"`
}

type ClassifierConfig struct {
	GeminiApiKey  string  `env:"GEMINI_API_KEY,required"`
	GeminiModel   string  `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseUrl string  `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Temperature   float64 `env:"GEMINI_TEMPERATURE" envDefault:"0.2"`
	MaxBodyChars  int     `env:"CLASSIFIER_MAX_BODY_CHARS" envDefault:"4000"`
}

type SpamFilterConfig struct {
	// FullTextThreshold is the signal count in subject plus body that marks a
	// message as likely spam. SubjectThreshold applies to the subject alone.
	FullTextThreshold int `env:"SPAM_FULL_TEXT_THRESHOLD" envDefault:"2"`
	SubjectThreshold  int `env:"SPAM_SUBJECT_THRESHOLD" envDefault:"1"`
}

type SyncConfig struct {
	MaxMessagesPerSync int64  `env:"SYNC_MAX_MESSAGES" envDefault:"50"`
	SyncDeadlineMin    int    `env:"SYNC_DEADLINE_MINUTES" envDefault:"10"`
	GmailQuery         string `env:"SYNC_GMAIL_QUERY" envDefault:"in:inbox"`
}
