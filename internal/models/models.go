package models

// All lists every model managed by AutoMigrate, parents first.
var All = []interface{}{
	&User{},
	&Profile{},
	&Project{},
	&Application{},
	&PasswordResetToken{},
	&HTFSubmission{},
}
