package handler

import (
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // token expiry timestamps

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/classroom-reservation/internal/config" // app configuration
    "github.com/iliyamo/classroom-reservation/internal/utils"  // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.  The service has
// a single administrative account configured through the environment, so
// there is no user table behind this handler.
type AuthHandler struct {
    Cfg config.Config
}

func NewAuthHandler(cfg config.Config) *AuthHandler {
    return &AuthHandler{Cfg: cfg}
}

// ----- DTOs -----

type loginReq struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type authResp struct {
    Username string    `json:"username"`
    Role     string    `json:"role"`
    Access   tokenPart `json:"access"`
}

// Login: verify the admin credentials and return a short-lived access token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    req.Username = strings.TrimSpace(req.Username)
    if req.Username == "" || req.Password == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
    }

    // Constant responses for both a wrong username and a wrong password so
    // the endpoint does not leak which part was incorrect.
    if !strings.EqualFold(req.Username, h.Cfg.AdminUser) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    if !utils.VerifyPassword(h.Cfg.AdminPassHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, h.Cfg.AdminUser, "ADMIN", h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }

    return c.JSON(http.StatusOK, authResp{
        Username: h.Cfg.AdminUser,
        Role:     "ADMIN",
        Access:   tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Me: simple protected endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "subject": c.Get("subject"),
        "role":    c.Get("role"),
    })
}
