package config

type Server struct {
	Env    string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"API_PORT" default:"8080"`
	Origin string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
}

type Auth struct {
	// Secret signs and verifies the bearer tokens carrying the verified
	// user id and role.
	Secret string `envconfig:"SESSION_SECRET" required:"true"`
}

type Database struct {
	// DSN empty means in-memory ticket and profile stores (contents lost on
	// restart); set a Postgres DSN for durable storage.
	DSN string `envconfig:"DB_DSN"`
}

type Sweep struct {
	// Schedule is a robfig/cron expression for the expired-ticket sweep.
	Schedule string `envconfig:"TICKET_SWEEP_SCHEDULE" default:"@every 60s"`
}
