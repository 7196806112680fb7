package api

import "github.com/gofiber/fiber/v2"

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileView struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Birthdate       string `json:"birthdate"`
	HasMenstruation bool   `json:"has_menstruation"`
}

type medicationView struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	DosageMg      float64 `json:"dosage_mg"`
	Frequency     int     `json:"frequency"`
	FirstDose     *string `json:"first_dose"`
	StartDate     string  `json:"start_date"`
	EndDate       *string `json:"end_date"`
	IsStopped     bool    `json:"is_stopped"`
	ReasonForStop string  `json:"reason_for_stop"`
}

type observationRoutes struct {
	create fiber.Handler
	update fiber.Handler
	delete fiber.Handler
}
