package gateway

import (
	"net/http"

	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/service"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (g *Gateway) signup(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in service.SignupInput
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	user, err := g.svc.Auth.Signup(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusCreated, user)
}

func (g *Gateway) login(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in loginRequest
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	res, err := g.svc.Auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, res)
}

func (g *Gateway) guestLogin(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	res, err := g.svc.Auth.GuestLogin(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, res)
}

func (g *Gateway) logout(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	claims, _ := contextkeys.GetTokenClaims(r.Context())
	if err := g.svc.Auth.Logout(r.Context(), claims); err != nil {
		g.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *Gateway) me(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	claims, _ := contextkeys.GetTokenClaims(r.Context())
	g.writeJSON(w, r, http.StatusOK, service.UserView{
		Name:     claims.Name,
		Email:    claims.Email,
		Initials: claims.Initials,
		Guest:    claims.Guest,
	})
}
