package service

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

type ContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ContactGroup struct {
	Letter   string            `json:"letter"`
	Contacts []*models.Contact `json:"contacts"`
}

type DeleteContactResult struct {
	Contact      *models.Contact `json:"contact"`
	TasksUpdated int             `json:"tasks_updated"`
}

type ContactsService struct {
	params  config.Params
	log     *slog.Logger
	db      Database
	events  EventSender
	now     func() time.Time
	newID   func() string
	pickInt func(n int) int
}

func NewContactsService(params config.Params, log *slog.Logger, db Database, events EventSender) *ContactsService {
	return &ContactsService{
		params:  params,
		log:     log,
		db:      db,
		events:  events,
		now:     time.Now,
		newID:   uuid.NewString,
		pickInt: rand.IntN,
	}
}

func (s *ContactsService) logger(ctx context.Context) *slog.Logger {
	return contextkeys.GetLoggerOr(ctx, s.log)
}

func (s *ContactsService) ListContacts(ctx context.Context) ([]*models.Contact, error) {
	contacts, err := loadContacts(ctx, s.db)
	if err != nil {
		s.logger(ctx).Error("db error", logging.DbErr("loadContacts", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	return contacts, nil
}

// GroupContacts buckets sorted contacts under the upper-cased first letter of
// their name, as the contact list renders them. Names that do not start with a
// letter share one trailing "#" group.
func GroupContacts(contacts []*models.Contact) []ContactGroup {
	groups := []ContactGroup{}
	index := make(map[string]int)
	var other []*models.Contact

	for _, c := range contacts {
		r, _ := utf8.DecodeRuneInString(strings.TrimSpace(c.Name))
		if r == utf8.RuneError || !unicode.IsLetter(r) {
			other = append(other, c)
			continue
		}
		letter := string(unicode.ToUpper(r))
		if i, ok := index[letter]; ok {
			groups[i].Contacts = append(groups[i].Contacts, c)
			continue
		}
		index[letter] = len(groups)
		groups = append(groups, ContactGroup{Letter: letter, Contacts: []*models.Contact{c}})
	}

	if len(other) > 0 {
		groups = append(groups, ContactGroup{Letter: "#", Contacts: other})
	}
	return groups
}

func (s *ContactsService) GetContact(ctx context.Context, id string) (*models.Contact, error) {
	log := s.logger(ctx).With(slog.String("contact_id", id))

	contact, err := s.findContact(ctx, id)
	if err != nil {
		log.Error("db error", logging.DbErr("loadContacts", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	if contact == nil {
		log.Error("contact not found")
		return nil, status.Error(codes.NotFound, ErrContactNotFoundMessage)
	}
	return contact, nil
}

func (s *ContactsService) CreateContact(ctx context.Context, in ContactInput) (*models.Contact, error) {
	log := s.logger(ctx)
	log.Debug("attempt")

	in, err := s.validate(in)
	if err != nil {
		log.Error("invalid contact", logging.Err(err))
		return nil, err
	}

	contact := &models.Contact{
		Id:    s.newID(),
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
		Color: ContactColors[s.pickInt(len(ContactColors))],
	}

	key, err := s.db.Post(ctx, contactsPath, contact)
	if err != nil {
		log.Error("db error", logging.DbErr("Post contacts", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	contact.Key = key

	log.Info("contact created", slog.String("contact_id", contact.Id))
	return contact, nil
}

// UpdateContact replaces the contact's editable fields and refreshes the
// name it is shown under in every task assigning it.
func (s *ContactsService) UpdateContact(ctx context.Context, id string, in ContactInput) (*models.Contact, error) {
	log := s.logger(ctx).With(slog.String("contact_id", id))
	log.Debug("attempt")

	in, err := s.validate(in)
	if err != nil {
		log.Error("invalid contact", logging.Err(err))
		return nil, err
	}

	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Name = in.Name
	contact.Email = in.Email
	contact.Phone = in.Phone

	if err := s.db.Put(ctx, firebase.Join(contactsPath, contact.Key), contact); err != nil {
		log.Error("db error", logging.DbErr("Put contact", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("contact updated")

	s.forEachAssigningTask(ctx, id, func(t *models.Task) error {
		return s.db.Patch(ctx, firebase.Join(tasksPath, t.Key, "Assigned_to", id), contact.Assignee())
	})

	return contact, nil
}

// DeleteContact removes the contact, then unassigns it from every task in a
// separate best-effort pass.
func (s *ContactsService) DeleteContact(ctx context.Context, id string) (*DeleteContactResult, error) {
	log := s.logger(ctx).With(slog.String("contact_id", id))
	log.Debug("attempt")

	contact, err := s.GetContact(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(ctx, firebase.Join(contactsPath, contact.Key)); err != nil {
		log.Error("db error", logging.DbErr("Delete contact", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("contact deleted")

	updated := s.forEachAssigningTask(ctx, id, func(t *models.Task) error {
		return s.db.Delete(ctx, firebase.Join(tasksPath, t.Key, "Assigned_to", id))
	})

	publish(ctx, s.logger(ctx), s.events, &models.EventMessage{
		Type:       models.EventContactDeleted,
		ContactId:  id,
		Email:      contact.Email,
		Username:   contact.Name,
		OccurredAt: s.now().UnixMilli(),
	})

	return &DeleteContactResult{Contact: contact, TasksUpdated: updated}, nil
}

// SeedDemoContacts inserts the demo address book, skipping entries whose email
// already exists. It returns how many contacts were added.
func (s *ContactsService) SeedDemoContacts(ctx context.Context) (int, error) {
	log := s.logger(ctx)

	existing, err := s.ListContacts(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[normalizeEmail(c.Email)] = true
	}

	added := 0
	for _, demo := range DemoContacts {
		if known[normalizeEmail(demo.Email)] {
			continue
		}
		if _, err := s.CreateContact(ctx, demo); err != nil {
			return added, err
		}
		added++
	}
	log.Info("demo contacts seeded", slog.Int("added", added))
	return added, nil
}

func (s *ContactsService) validate(in ContactInput) (ContactInput, error) {
	in.Name = processText(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = processText(in.Phone)

	if !lenIsValid(in.Name, s.params.Name) {
		return in, status.Error(codes.InvalidArgument, ErrInvalidNameMessage)
	}
	if !emailIsValid(in.Email) {
		return in, status.Error(codes.InvalidArgument, ErrInvalidEmailMessage)
	}
	if !phoneIsValid(in.Phone) {
		return in, status.Error(codes.InvalidArgument, ErrInvalidPhoneMessage)
	}
	return in, nil
}

func (s *ContactsService) findContact(ctx context.Context, id string) (*models.Contact, error) {
	contacts, err := loadContacts(ctx, s.db)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if c.Id == id {
			return c, nil
		}
	}
	return nil, nil
}

// forEachAssigningTask applies fn to every task that assigns the contact.
// Failures are logged and skipped; the number of successful updates is
// returned.
func (s *ContactsService) forEachAssigningTask(ctx context.Context, contactId string, fn func(t *models.Task) error) int {
	log := s.logger(ctx).With(slog.String("contact_id", contactId))

	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		log.Error("cascade skipped", logging.DbErr("loadTasks", err))
		return 0
	}

	updated := 0
	for _, t := range tasks {
		if _, ok := t.AssignedTo[contactId]; !ok {
			continue
		}
		if err := fn(t); err != nil {
			log.Error("cascade failed for task", slog.Int64("task_id", t.Id), logging.Err(err))
			continue
		}
		updated++
	}
	if updated > 0 {
		log.Info("tasks updated for contact", slog.Int("count", updated))
	}
	return updated
}

func sortContacts(contacts []*models.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := strings.ToLower(contacts[i].Name), strings.ToLower(contacts[j].Name)
		if a != b {
			return a < b
		}
		return contacts[i].Id < contacts[j].Id
	})
}
