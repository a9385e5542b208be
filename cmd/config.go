package cmd

import "time"

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string

	// MaxOrdersPerSlot is the planning ceiling a delivery window slot is
	// rated against. Advisory only.
	MaxOrdersPerSlot int

	// MaxDriverLoad caps concurrent deliveries per driver at assignment.
	MaxDriverLoad int

	// PrescriptionReminderMaxAge is how long a prescription may sit in the
	// review queue before the reminder job flags it.
	PrescriptionReminderMaxAge time.Duration
}
