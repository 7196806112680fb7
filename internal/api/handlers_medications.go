package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ictus/internal/models"
	"github.com/terraincognita07/ictus/internal/services"
)

const medicationSubject = "Medication"

func newMedicationView(medication models.Medication) medicationView {
	view := medicationView{
		ID:            medication.ID,
		Name:          medication.Name,
		DosageMg:      medication.DosageMg,
		Frequency:     medication.Frequency,
		StartDate:     services.FormatCalendarDate(medication.StartDate),
		IsStopped:     medication.IsStopped,
		ReasonForStop: medication.ReasonForStop,
	}
	if medication.FirstDose != nil {
		firstDose := services.FormatFirstDose(medication.FirstDose)
		view.FirstDose = &firstDose
	}
	if medication.EndDate != nil {
		endDate := services.FormatCalendarDate(*medication.EndDate)
		view.EndDate = &endDate
	}
	return view
}

func (handler *Handler) ListMedications(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	page, err := handler.medicationService.List(user.ID, c.QueryInt("page", 1), c.QueryInt("per_page", services.DefaultMedicationsPerPage))
	if err != nil {
		return handler.respondServiceError(c, medicationSubject, "list", err)
	}
	if len(page.Items) == 0 {
		return apiError(c, fiber.StatusNotFound, "No medications.")
	}

	views := make([]medicationView, 0, len(page.Items))
	for _, medication := range page.Items {
		views = append(views, newMedicationView(medication))
	}
	return c.JSON(fiber.Map{
		"data": views,
		"pagination": fiber.Map{
			"page":        page.Page,
			"per_page":    page.PerPage,
			"total_pages": page.Pages(),
			"total_items": page.Total,
		},
	})
}

func (handler *Handler) CreateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}

	var input services.MedicationInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	medication, err := handler.medicationService.Create(user.ID, input)
	if err != nil {
		return handler.respondServiceError(c, medicationSubject, "create", err)
	}
	handler.metrics.RecordJournalWrite("medication", "create")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Medication added successfully.", "id": medication.ID})
}

func (handler *Handler) UpdateMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	id, ok := pathID(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, medicationSubject+" not found or access denied")
	}

	var input services.MedicationInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	medication, err := handler.medicationService.Update(user.ID, id, input)
	if err != nil {
		return handler.respondServiceError(c, medicationSubject, "update", err)
	}
	handler.metrics.RecordJournalWrite("medication", "update")
	return c.JSON(fiber.Map{"message": "Medication updated successfully.", "id": medication.ID})
}

func (handler *Handler) DeleteMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	id, ok := pathID(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, medicationSubject+" not found or access denied")
	}

	if err := handler.medicationService.Delete(user.ID, id); err != nil {
		return handler.respondServiceError(c, medicationSubject, "delete", err)
	}
	handler.metrics.RecordJournalWrite("medication", "delete")
	return c.JSON(fiber.Map{"message": "Medication deleted successfully."})
}

func (handler *Handler) StopMedication(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, invalidAccessTokenMessage)
	}
	id, ok := pathID(c)
	if !ok {
		return apiError(c, fiber.StatusNotFound, medicationSubject+" not found or access denied")
	}

	var input services.StopMedicationInput
	if err := decodeJSON(c, &input); err != nil {
		return apiError(c, fiber.StatusBadRequest, invalidPayloadMessage)
	}
	medication, err := handler.medicationService.Stop(user.ID, id, input)
	if err != nil {
		return handler.respondServiceError(c, medicationSubject, "stop", err)
	}
	handler.metrics.RecordJournalWrite("medication", "stop")
	return c.JSON(fiber.Map{"message": "Medication stopped successfully", "data": newMedicationView(medication)})
}
