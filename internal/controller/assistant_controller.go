package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"ai-study-assistant-be/internal/constant"
	"ai-study-assistant-be/internal/dto"
	"ai-study-assistant-be/internal/pkg/serverutils"
	"ai-study-assistant-be/internal/service"
	"ai-study-assistant-be/pkg/store"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	HintFromText(ctx *fiber.Ctx) error
	HintFromImage(ctx *fiber.Ctx) error
	HintFromPDF(ctx *fiber.Ctx) error
	HintFromVoice(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	sessionService   service.ISessionService
}

func NewAssistantController(assistantService service.IAssistantService, sessionService service.ISessionService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		sessionService:   sessionService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("/hint/text", c.HintFromText)
	h.Post("/hint/image", c.HintFromImage)
	h.Post("/hint/pdf", c.HintFromPDF)
	h.Post("/hint/voice", c.HintFromVoice)
	h.Get("/history/:modality", c.History)
}

func (c *assistantController) HintFromText(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	var req dto.TextHintRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.HintFromText(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get hint", res))
}

func (c *assistantController) HintFromImage(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	data, _, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.HintFromImage(ctx.Context(), sessionID, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get hint", res))
}

func (c *assistantController) HintFromPDF(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	data, _, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.HintFromPDF(ctx.Context(), sessionID, data)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get hint", res))
}

func (c *assistantController) HintFromVoice(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	data, mimeType, err := readUpload(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.HintFromVoice(ctx.Context(), sessionID, data, mimeType)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get hint", res))
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	sessionID := ctx.Locals("session_id").(string)

	modality := store.Modality(ctx.Params("modality"))
	if !store.ValidModality(modality) {
		return fiber.NewError(fiber.StatusBadRequest, "Unknown modality")
	}

	res, err := c.sessionService.History(ctx.Context(), sessionID, modality)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

// readUpload pulls the uploaded file fully into memory. Uploads never touch
// a shared temp path, so concurrent sessions cannot clobber each other.
func readUpload(ctx *fiber.Ctx) ([]byte, string, error) {
	fileHeader, err := ctx.FormFile(constant.UploadFieldName)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Please upload a file.")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Uploaded file could not be opened.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fiber.NewError(fiber.StatusBadRequest, "Uploaded file could not be read.")
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}
