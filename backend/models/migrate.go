package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&LoginHistory{},
		&Formation{},
		&Module{},
		&Lesson{},
		&Quiz{},
		&Question{},
		&Option{},
		&Lead{},
	}
}
