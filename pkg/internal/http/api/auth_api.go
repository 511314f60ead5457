package api

import (
	"io"

	"git.solsynth.dev/hypernet/circle/pkg/internal/gap"
	"git.solsynth.dev/hypernet/circle/pkg/internal/http/exts"
	"git.solsynth.dev/hypernet/circle/pkg/internal/models"
	"git.solsynth.dev/hypernet/circle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

func login(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	session, err := services.Login(c.UserContext(), gap.Gw, exts.GetSession(c).VisitorID, data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, services.LoginErrorMessage(err))
	}

	return c.JSON(session.Identity.Public())
}

func register(c *fiber.Ctx) error {
	var data struct {
		Email           string `form:"email" validate:"required,email"`
		Password        string `form:"password" validate:"required"`
		ConfirmPassword string `form:"confirmPassword" validate:"required"`
		FirstName       string `form:"firstName" validate:"required"`
		LastName        string `form:"lastName" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	form := services.RegistrationForm{
		Registration: models.Registration{
			Email:     data.Email,
			Password:  data.Password,
			FirstName: data.FirstName,
			LastName:  data.LastName,
		},
		ConfirmPassword: data.ConfirmPassword,
	}

	if file, err := c.FormFile("photo"); err == nil {
		if file.Size > services.MaxRegistrationPhotoSize {
			return fiber.NewError(fiber.StatusBadRequest, "The photo must not exceed 5MB")
		}
		reader, err := file.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		content, err := io.ReadAll(reader)
		_ = reader.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		form.Photo = &models.Photo{Filename: file.Filename, Content: content}
	}

	if err := services.ValidateRegistration(form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session, err := services.Register(c.UserContext(), gap.Gw, exts.GetSession(c).VisitorID, form)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, services.RegisterErrorMessage(err))
	}

	return c.Status(fiber.StatusCreated).JSON(session.Identity.Public())
}

func logout(c *fiber.Ctx) error {
	if err := services.Logout(c.UserContext(), exts.GetSession(c)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
