package devconnect

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-devconnect/middleware/jwtware"
)

func RegisterAuthRoutes(app fiber.Router, opts ...AuthControllerOption) *AuthController {
	controller := NewAuthController(opts...)
	protected := ProtectedRoute(controller.Auther, controller.Logger, controller.ContextKey)

	api := app.Group(controller.Routes.Prefix)

	api.Post(controller.Routes.Users, controller.RegisterUser).Name("users.register")
	api.Post(controller.Routes.Auth, controller.Login).Name("auth.login")
	api.Get(controller.Routes.Auth, protected, controller.CurrentUser).Name("auth.me")
	api.Get(controller.Routes.ProfileMe, protected, controller.CurrentProfile).Name("profile.me")
	api.Post(controller.Routes.Profile, protected, controller.SaveProfile).Name("profile.save")

	return controller
}

type AuthControllerRoutes struct {
	Prefix    string
	Users     string
	Auth      string
	Profile   string
	ProfileMe string
}

type AuthController struct {
	Logger     Logger
	Auther     *Auther
	Routes     *AuthControllerRoutes
	ContextKey string
}

type AuthControllerOption func(*AuthController) *AuthController

func WithAuther(a *Auther) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = a
		return c
	}
}

func WithControllerLogger(l Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:     defLogger(),
		ContextKey: jwtware.DefaultContextKey,
		Routes: &AuthControllerRoutes{
			Prefix:    "/api",
			Users:     "/users",
			Auth:      "/auth",
			Profile:   "/profile",
			ProfileMe: "/profile/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in auth controller...")
	}

	return c
}

// TokenResponse is returned by registration and login
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterUser handles POST /api/users
func (a *AuthController) RegisterUser(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	token, err := a.Auther.Register(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{Token: token})
}

// Login handles POST /api/auth
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginMessage)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	token, err := a.Auther.Login(c.UserContext(), *payload)
	if err != nil {
		return err
	}

	return c.JSON(TokenResponse{Token: token})
}

// CurrentUser handles GET /api/auth
func (a *AuthController) CurrentUser(c *fiber.Ctx) error {
	claims, ok := GetRouterClaims(c, a.ContextKey)
	if !ok {
		return ErrUnauthorized
	}

	user, err := a.Auther.CurrentUser(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// CurrentProfile handles GET /api/profile/me
func (a *AuthController) CurrentProfile(c *fiber.Ctx) error {
	claims, ok := GetRouterClaims(c, a.ContextKey)
	if !ok {
		return ErrUnauthorized
	}

	profile, err := a.Auther.CurrentProfile(c.UserContext(), claims.UserID())
	if err != nil {
		return err
	}

	return c.JSON(profile)
}

// SaveProfile handles POST /api/profile
func (a *AuthController) SaveProfile(c *fiber.Ctx) error {
	claims, ok := GetRouterClaims(c, a.ContextKey)
	if !ok {
		return ErrUnauthorized
	}

	payload := new(ProfileMessage)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	profile, err := a.Auther.SaveProfile(c.UserContext(), claims.UserID(), *payload)
	if err != nil {
		return err
	}

	return c.JSON(profile)
}
