package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/gatherly/eventhub/internal/core/domain"
)

// EventRepository persists events, their organizer reference and the
// event_invitations join rows.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	model := toEventModel(event)
	db := dbFrom(ctx, r.db).WithContext(ctx)

	if err := db.Omit("Organizer", "Invitees").Create(model).Error; err != nil {
		return nil, translate(err, "Event not found")
	}
	if len(model.Invitees) > 0 {
		invitees := make([]userModel, len(model.Invitees))
		copy(invitees, model.Invitees)
		if err := db.Model(&eventModel{ID: model.ID}).Association("Invitees").Replace(invitees); err != nil {
			return nil, translate(err, "Event not found with id: %d", model.ID)
		}
	}
	return r.findBy(ctx, "id = ?", model.ID, "Event not found with id: %d", model.ID)
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	model := toEventModel(event)
	db := dbFrom(ctx, r.db).WithContext(ctx)

	err := db.Model(&eventModel{ID: model.ID}).
		Select("Title", "Description", "Location", "EventDate", "StartTime", "EndTime", "EventType").
		Updates(model).Error
	if err != nil {
		return nil, translate(err, "Event not found with id: %d", event.ID)
	}

	invitees := make([]userModel, len(model.Invitees))
	copy(invitees, model.Invitees)
	if err := db.Model(&eventModel{ID: model.ID}).Association("Invitees").Replace(invitees); err != nil {
		return nil, translate(err, "Event not found with id: %d", event.ID)
	}

	return r.findBy(ctx, "id = ?", model.ID, "Event not found with id: %d", model.ID)
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	db := dbFrom(ctx, r.db).WithContext(ctx)
	if err := db.Model(&eventModel{ID: id}).Association("Invitees").Clear(); err != nil {
		return translate(err, "Event not found with id: %d", id)
	}
	res := db.Delete(&eventModel{}, id)
	if res.Error != nil {
		return translate(res.Error, "Event not found with id: %d", id)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("Event not found with id: %d", id)
	}
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	return r.findBy(ctx, "id = ?", id, "Event not found with id: %d", id)
}

func (r *EventRepository) FindByTitle(ctx context.Context, title string) (*domain.Event, error) {
	return r.findBy(ctx, "title = ?", title, "Event not found with title: %s", title)
}

func (r *EventRepository) findBy(ctx context.Context, query string, arg any, notFound string, notFoundArgs ...any) (*domain.Event, error) {
	var model eventModel
	err := dbFrom(ctx, r.db).WithContext(ctx).
		Preload("Organizer").Preload("Organizer.Role").Preload("Invitees").
		Where(query, arg).
		First(&model).Error
	if err != nil {
		return nil, translate(err, notFound, notFoundArgs...)
	}
	return model.toDomain(), nil
}

func (r *EventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	return r.list(ctx, dbFrom(ctx, r.db).WithContext(ctx))
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID uint) ([]*domain.Event, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).Where("organizer_id = ?", organizerID)
	return r.list(ctx, db)
}

func (r *EventRepository) ListByInvitee(ctx context.Context, userID uint) ([]*domain.Event, error) {
	db := dbFrom(ctx, r.db).WithContext(ctx).
		Joins("JOIN event_invitations ON event_invitations.event_id = events.id").
		Where("event_invitations.user_id = ?", userID)
	return r.list(ctx, db)
}

func (r *EventRepository) list(ctx context.Context, db *gorm.DB) ([]*domain.Event, error) {
	var models []eventModel
	err := db.
		Preload("Organizer").Preload("Organizer.Role").Preload("Invitees").
		Order("event_date, start_time").
		Find(&models).Error
	if err != nil {
		return nil, translate(err, "events not found")
	}
	events := make([]*domain.Event, 0, len(models))
	for i := range models {
		events = append(events, models[i].toDomain())
	}
	return events, nil
}
