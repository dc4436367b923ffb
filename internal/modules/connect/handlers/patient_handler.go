package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/grupovitalis/connect-api/internal/modules/connect/models"
	"github.com/grupovitalis/connect-api/internal/modules/connect/repositories"
)

type PatientHandler struct {
	patients repositories.PatientRepo
}

func NewPatientHandler(patients repositories.PatientRepo) *PatientHandler {
	return &PatientHandler{patients: patients}
}

type patientRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type patientNoteRequest struct {
	AttendantID string `json:"attendant_id"`
	Body        string `json:"body"`
}

type patientTagRequest struct {
	Label string `json:"label"`
}

// Create godoc
// @Summary Cadastra um paciente
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param body body patientRequest true "Paciente"
// @Success 201 {object} models.Patient
// @Failure 400 {object} map[string]string
// @Router /patients [post]
func (h *PatientHandler) Create(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req patientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Name == "" || req.Phone == "" {
		return respondError(c, fiber.StatusBadRequest, "nome e telefone são obrigatórios")
	}

	patient := &models.Patient{
		TenantID:  tenantID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		AvatarURL: req.AvatarURL,
	}
	if err := h.patients.Create(patient); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

// Get godoc
// @Summary Consulta um paciente
// @Tags Pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Success 200 {object} models.Patient
// @Failure 404 {object} map[string]string
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	patient, err := h.patients.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(patient)
}

// List godoc
// @Summary Lista os pacientes do tenant
// @Tags Pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param limit query int false "Limite de resultados"
// @Success 200 {array} models.Patient
// @Router /patients [get]
func (h *PatientHandler) List(c *fiber.Ctx) error {
	tenantID, err := tenantFromCtx(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	patients, err := h.patients.List(tenantID, c.QueryInt("limit"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(patients)
}

// Update godoc
// @Summary Atualiza os dados de um paciente
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Param body body patientRequest true "Paciente"
// @Success 200 {object} models.Patient
// @Failure 404 {object} map[string]string
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	patient, err := h.patients.GetByID(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	var req patientRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.AvatarURL != "" {
		patient.AvatarURL = req.AvatarURL
	}

	if err := h.patients.Save(patient); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(patient)
}

// AddNote godoc
// @Summary Adiciona uma anotação ao paciente
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Param body body patientNoteRequest true "Anotação"
// @Success 201 {object} models.PatientNote
// @Failure 400 {object} map[string]string
// @Router /patients/{id}/notas [post]
func (h *PatientHandler) AddNote(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req patientNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Body == "" {
		return respondError(c, fiber.StatusBadRequest, "anotação vazia")
	}

	attendantID, err := parseUUIDField(req.AttendantID, "attendant_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := h.patients.GetByID(id); err != nil {
		return respondServiceError(c, err)
	}

	note := &models.PatientNote{
		PatientID:   id,
		AttendantID: attendantID,
		Body:        req.Body,
	}
	if err := h.patients.AddNote(note); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(note)
}

// ListNotes godoc
// @Summary Lista as anotações do paciente
// @Tags Pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Success 200 {array} models.PatientNote
// @Router /patients/{id}/notas [get]
func (h *PatientHandler) ListNotes(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	notes, err := h.patients.ListNotes(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(notes)
}

// AddTag godoc
// @Summary Adiciona uma etiqueta ao paciente
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Param body body patientTagRequest true "Etiqueta"
// @Success 201 {object} models.PatientTag
// @Failure 400 {object} map[string]string
// @Router /patients/{id}/etiquetas [post]
func (h *PatientHandler) AddTag(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req patientTagRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "corpo da requisição inválido")
	}
	if req.Label == "" {
		return respondError(c, fiber.StatusBadRequest, "etiqueta vazia")
	}

	if _, err := h.patients.GetByID(id); err != nil {
		return respondServiceError(c, err)
	}

	tag := &models.PatientTag{PatientID: id, Label: req.Label}
	if err := h.patients.AddTag(tag); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

// ListTags godoc
// @Summary Lista as etiquetas do paciente
// @Tags Pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Success 200 {array} models.PatientTag
// @Router /patients/{id}/etiquetas [get]
func (h *PatientHandler) ListTags(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	tags, err := h.patients.ListTags(id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(tags)
}

// RemoveTag godoc
// @Summary Remove uma etiqueta do paciente
// @Tags Pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do paciente"
// @Param tagId path string true "ID da etiqueta"
// @Success 204
// @Router /patients/{id}/etiquetas/{tagId} [delete]
func (h *PatientHandler) RemoveTag(c *fiber.Ctx) error {
	tagID, err := parseIDParam(c, "tagId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := h.patients.RemoveTag(tagID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
