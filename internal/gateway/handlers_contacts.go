package gateway

import (
	"net/http"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/service"
)

type contactsResponse struct {
	Contacts []*models.Contact     `json:"contacts"`
	Groups   []service.ContactGroup `json:"groups"`
}

func (g *Gateway) listContacts(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	contacts, err := g.svc.Contacts.ListContacts(r.Context())
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, contactsResponse{
		Contacts: contacts,
		Groups:   service.GroupContacts(contacts),
	})
}

func (g *Gateway) getContact(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	contact, err := g.svc.Contacts.GetContact(r.Context(), pathParams["id"])
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, contact)
}

func (g *Gateway) createContact(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var in service.ContactInput
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	contact, err := g.svc.Contacts.CreateContact(r.Context(), in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusCreated, contact)
}

func (g *Gateway) updateContact(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	var in service.ContactInput
	if err := g.decode(r, &in); err != nil {
		g.writeError(w, r, err)
		return
	}

	contact, err := g.svc.Contacts.UpdateContact(r.Context(), pathParams["id"], in)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, contact)
}

func (g *Gateway) deleteContact(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	res, err := g.svc.Contacts.DeleteContact(r.Context(), pathParams["id"])
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, r, http.StatusOK, res)
}
