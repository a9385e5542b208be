package http

import (
	"net/http"
	"strings"

	"pharmacy/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Capability is a single permission the caller holds for this request.
type Capability string

const (
	CapCartEdit           Capability = "cart:edit"
	CapOrderCreate        Capability = "order:create"
	CapOrderCancel        Capability = "order:cancel"
	CapPrescriptionReview Capability = "prescription:review"
	CapDeliveryAssign     Capability = "delivery:assign"
	CapDeliveryDrive      Capability = "delivery:drive"
	CapCatalogEdit        Capability = "catalog:edit"
)

// roleCapabilities maps the token's role claim to the capability set it
// grants. Resolved once per request by the auth middleware.
var roleCapabilities = map[string][]Capability{
	"customer":   {CapCartEdit, CapOrderCreate, CapOrderCancel},
	"pharmacist": {CapPrescriptionReview},
	"manager":    {CapDeliveryAssign, CapCatalogEdit, CapOrderCancel},
	"driver":     {CapDeliveryDrive},
}

// guestCapabilities is what an anonymous session gets: shopping and
// checkout, nothing that touches other people's data.
var guestCapabilities = []Capability{CapCartEdit, CapOrderCreate, CapOrderCancel}

const actorContextKey = "actor"

// Actor is the resolved caller of a request: either an authenticated user
// (role and subject from the token) or a guest session.
type Actor struct {
	Role      string
	SubjectID kernel.UUID
	Session   string

	caps map[Capability]struct{}
}

// Can reports whether the actor holds the capability.
func (a Actor) Can(c Capability) bool {
	_, ok := a.caps[c]
	return ok
}

// OwnerRef converts the actor into the owner reference carts and orders
// are keyed by.
func (a Actor) OwnerRef() (kernel.OwnerRef, error) {
	if a.Session != "" {
		return kernel.NewGuestRef(a.Session)
	}
	return kernel.NewCustomerRef(a.SubjectID)
}

func newActor(role string, subjectID kernel.UUID) Actor {
	actor := Actor{Role: role, SubjectID: subjectID, caps: map[Capability]struct{}{}}
	for _, c := range roleCapabilities[role] {
		actor.caps[c] = struct{}{}
	}
	return actor
}

func newGuestActor(session string) Actor {
	actor := Actor{Session: session, caps: map[Capability]struct{}{}}
	for _, c := range guestCapabilities {
		actor.caps[c] = struct{}{}
	}
	return actor
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware resolves the caller from a Bearer token, or from the
// X-Session-Token header for guests. Tokens are only ever verified here;
// issuing them is somebody else's job.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			authHeader := ctx.Request().Header.Get("Authorization")
			if authHeader == "" {
				session := ctx.Request().Header.Get("X-Session-Token")
				if session == "" {
					return ctx.JSON(http.StatusUnauthorized, errorResponse{
						Code:    http.StatusUnauthorized,
						Message: "Authorization header or X-Session-Token required",
					})
				}
				ctx.Set(actorContextKey, newGuestActor(session))
				return next(ctx)
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			claims := &tokenClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims,
				func(t *jwt.Token) (any, error) { return secret, nil },
				jwt.WithValidMethods([]string{"HS256"}),
			)
			if err != nil || !token.Valid {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			subjectID, err := kernel.UUIDFromString(claims.Subject)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Token subject is not a valid id",
				})
			}

			ctx.Set(actorContextKey, newActor(claims.Role, subjectID))
			return next(ctx)
		}
	}
}

// Require guards a route with a capability check.
func Require(c Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, ok := ctx.Get(actorContextKey).(Actor)
			if !ok || !actor.Can(c) {
				return ctx.JSON(http.StatusForbidden, errorResponse{
					Code:    http.StatusForbidden,
					Message: "Missing capability: " + string(c),
				})
			}
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) Actor {
	actor, _ := ctx.Get(actorContextKey).(Actor)
	return actor
}
