package config

// Default конфигурация по умолчанию: рабочие часы 08:00-18:00,
// блокировка изменений за 60 минут до начала и стандартный каталог
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			Path:            "reservations.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxMaxRetries:    3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "reservation-service",
		},
		Policy: PolicyConfig{
			OpeningStart:         "08:00",
			OpeningEnd:           "18:00",
			LockThresholdMinutes: 60,
			Location:             "Local",
			RetainCancelled:      true,
		},
		Auth: AuthConfig{
			UserHeader:       "X-User",
			DirectoryTimeout: 5,
		},
		Events: EventsConfig{
			Topic: "reservations",
		},
		Retention: RetentionConfig{
			Schedule: "0 3 * * *",
			MaxAge:   90,
		},
		Resources: []ResourceConfig{
			{ID: "cam1", Name: "Camera A", Category: "Apparaat"},
			{ID: "cam2", Name: "Camera B", Category: "Apparaat"},
			{ID: "mic1", Name: "Microfoon set", Category: "Audio"},
			{ID: "lap1", Name: "Laptop 13\"", Category: "IT"},
			{ID: "room1", Name: "Vergaderruimte 1", Category: "Ruimte"},
			{ID: "room2", Name: "Studio", Category: "Ruimte"},
		},
	}
}
