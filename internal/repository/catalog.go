package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/seatserve/canteen-api/internal/domain"
	"github.com/seatserve/canteen-api/internal/repository/dao"
)

var (
	ErrCanteenNotFound    = dao.ErrCanteenNotFound
	ErrQRCodeNotFound     = dao.ErrQRCodeNotFound
	ErrMenuItemNotFound   = dao.ErrMenuItemNotFound
	ErrItemOptionNotFound = dao.ErrItemOptionNotFound
	ErrSeatExists         = dao.ErrSeatExists
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
)

type CatalogDAO interface {
	InsertCanteen(ctx context.Context, canteen dao.Canteen) (dao.Canteen, error)
	InsertLab(ctx context.Context, lab dao.Lab) (dao.Lab, error)
	InsertSeatWithQRCode(ctx context.Context, seat dao.Seat, qr dao.QRCode) (dao.Seat, dao.QRCode, error)
	InsertMenuItem(ctx context.Context, item dao.MenuItem) (dao.MenuItem, error)
	FindCanteenByID(ctx context.Context, id uint) (dao.Canteen, error)
	FindQRCodeByToken(ctx context.Context, token uuid.UUID) (dao.QRCode, error)
	FindActiveQRCodes(ctx context.Context) ([]dao.QRCode, error)
	UpdateQRCodeActive(ctx context.Context, token uuid.UUID, active bool) (dao.QRCode, error)
	FindMenuItemByID(ctx context.Context, id uint) (dao.MenuItem, error)
	FindItemOptionByID(ctx context.Context, id uint) (dao.ItemOption, error)
	FindAvailableMenuItems(ctx context.Context, canteenID uint) ([]dao.MenuItem, error)
}

type AssignmentDAO interface {
	Upsert(ctx context.Context, assignment dao.ManagerAssignment) (dao.ManagerAssignment, error)
	FindByCanteenID(ctx context.Context, canteenID uint) (dao.ManagerAssignment, error)
	FindCanteenIDsByUserID(ctx context.Context, userID uint) ([]uint, error)
	FindCanteensByUserID(ctx context.Context, userID uint) ([]dao.Canteen, error)
}

type CatalogRepository struct {
	dao           CatalogDAO
	assignmentDAO AssignmentDAO
}

func NewCatalogRepository(dao CatalogDAO, assignmentDAO AssignmentDAO) *CatalogRepository {
	return &CatalogRepository{
		dao:           dao,
		assignmentDAO: assignmentDAO,
	}
}

func (r *CatalogRepository) CreateCanteen(ctx context.Context, canteen domain.Canteen) (domain.Canteen, error) {
	created, err := r.dao.InsertCanteen(ctx, dao.Canteen{
		Name:     canteen.Name,
		IsActive: canteen.IsActive,
	})
	if err != nil {
		return domain.Canteen{}, fmt.Errorf("r.dao.InsertCanteen -> %w", err)
	}

	return canteenDaoToDomain(created), nil
}

func (r *CatalogRepository) CreateLab(ctx context.Context, lab domain.Lab) (domain.Lab, error) {
	created, err := r.dao.InsertLab(ctx, dao.Lab{
		Name:      lab.Name,
		CanteenID: lab.CanteenID,
	})
	if err != nil {
		return domain.Lab{}, fmt.Errorf("r.dao.InsertLab -> %w", err)
	}

	return labDaoToDomain(created), nil
}

// CreateSeat creates a seat together with a fresh, active QR code.
func (r *CatalogRepository) CreateSeat(ctx context.Context, seat domain.Seat) (domain.Seat, domain.QRCode, error) {
	createdSeat, createdQR, err := r.dao.InsertSeatWithQRCode(ctx,
		dao.Seat{LabID: seat.LabID, SeatNumber: seat.SeatNumber},
		dao.QRCode{Token: uuid.New(), IsActive: true},
	)
	if err != nil {
		return domain.Seat{}, domain.QRCode{}, fmt.Errorf("r.dao.InsertSeatWithQRCode -> %w", err)
	}

	return seatDaoToDomain(createdSeat), qrDaoToDomain(createdQR), nil
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item domain.MenuItem) (domain.MenuItem, error) {
	options := make([]dao.ItemOption, len(item.Options))
	for i, o := range item.Options {
		options[i] = dao.ItemOption{Name: o.Name}
	}

	created, err := r.dao.InsertMenuItem(ctx, dao.MenuItem{
		CanteenID:   item.CanteenID,
		Name:        item.Name,
		IsAvailable: item.IsAvailable,
		Options:     options,
	})
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("r.dao.InsertMenuItem -> %w", err)
	}

	return menuItemDaoToDomain(created), nil
}

func (r *CatalogRepository) FindCanteenByID(ctx context.Context, id uint) (domain.Canteen, error) {
	found, err := r.dao.FindCanteenByID(ctx, id)
	if err != nil {
		return domain.Canteen{}, fmt.Errorf("r.dao.FindCanteenByID -> %w", err)
	}

	return canteenDaoToDomain(found), nil
}

func (r *CatalogRepository) FindSeatLocationByToken(ctx context.Context, token uuid.UUID) (domain.SeatLocation, error) {
	found, err := r.dao.FindQRCodeByToken(ctx, token)
	if err != nil {
		return domain.SeatLocation{}, fmt.Errorf("r.dao.FindQRCodeByToken -> %w", err)
	}

	return seatLocationDaoToDomain(found), nil
}

func (r *CatalogRepository) FindActiveSeatLocations(ctx context.Context) ([]domain.SeatLocation, error) {
	found, err := r.dao.FindActiveQRCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveQRCodes -> %w", err)
	}

	locations := make([]domain.SeatLocation, len(found))
	for i, qr := range found {
		locations[i] = seatLocationDaoToDomain(qr)
	}

	return locations, nil
}

func (r *CatalogRepository) SetQRCodeActive(ctx context.Context, token uuid.UUID, active bool) (domain.QRCode, error) {
	updated, err := r.dao.UpdateQRCodeActive(ctx, token, active)
	if err != nil {
		return domain.QRCode{}, fmt.Errorf("r.dao.UpdateQRCodeActive -> %w", err)
	}

	return qrDaoToDomain(updated), nil
}

func (r *CatalogRepository) FindMenuItemByID(ctx context.Context, id uint) (domain.MenuItem, error) {
	found, err := r.dao.FindMenuItemByID(ctx, id)
	if err != nil {
		return domain.MenuItem{}, fmt.Errorf("r.dao.FindMenuItemByID -> %w", err)
	}

	return menuItemDaoToDomain(found), nil
}

func (r *CatalogRepository) FindItemOptionByID(ctx context.Context, id uint) (domain.ItemOption, error) {
	found, err := r.dao.FindItemOptionByID(ctx, id)
	if err != nil {
		return domain.ItemOption{}, fmt.Errorf("r.dao.FindItemOptionByID -> %w", err)
	}

	return optionDaoToDomain(found), nil
}

func (r *CatalogRepository) FindAvailableMenuItems(ctx context.Context, canteenID uint) ([]domain.MenuItem, error) {
	found, err := r.dao.FindAvailableMenuItems(ctx, canteenID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAvailableMenuItems -> %w", err)
	}

	items := make([]domain.MenuItem, len(found))
	for i, item := range found {
		items[i] = menuItemDaoToDomain(item)
	}

	return items, nil
}

func (r *CatalogRepository) AssignManager(ctx context.Context, assignment domain.ManagerAssignment) (domain.ManagerAssignment, error) {
	saved, err := r.assignmentDAO.Upsert(ctx, dao.ManagerAssignment{
		CanteenID:  assignment.CanteenID,
		UserID:     assignment.UserID,
		AssignedAt: assignment.AssignedAt,
	})
	if err != nil {
		return domain.ManagerAssignment{}, fmt.Errorf("r.assignmentDAO.Upsert -> %w", err)
	}

	return assignmentDaoToDomain(saved), nil
}

func (r *CatalogRepository) FindAssignmentByCanteenID(ctx context.Context, canteenID uint) (domain.ManagerAssignment, error) {
	found, err := r.assignmentDAO.FindByCanteenID(ctx, canteenID)
	if err != nil {
		return domain.ManagerAssignment{}, fmt.Errorf("r.assignmentDAO.FindByCanteenID -> %w", err)
	}

	return assignmentDaoToDomain(found), nil
}

func (r *CatalogRepository) FindManagedCanteenIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := r.assignmentDAO.FindCanteenIDsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.assignmentDAO.FindCanteenIDsByUserID -> %w", err)
	}

	return ids, nil
}

func (r *CatalogRepository) FindManagedCanteens(ctx context.Context, userID uint) ([]domain.Canteen, error) {
	found, err := r.assignmentDAO.FindCanteensByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.assignmentDAO.FindCanteensByUserID -> %w", err)
	}

	canteens := make([]domain.Canteen, len(found))
	for i, c := range found {
		canteens[i] = canteenDaoToDomain(c)
		managerID := userID
		canteens[i].ManagerID = &managerID
	}

	return canteens, nil
}

func canteenDaoToDomain(c dao.Canteen) domain.Canteen {
	return domain.Canteen{
		ID:        c.ID,
		Name:      c.Name,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func labDaoToDomain(l dao.Lab) domain.Lab {
	return domain.Lab{
		ID:        l.ID,
		Name:      l.Name,
		CanteenID: l.CanteenID,
	}
}

func seatDaoToDomain(s dao.Seat) domain.Seat {
	return domain.Seat{
		ID:         s.ID,
		SeatNumber: s.SeatNumber,
		LabID:      s.LabID,
	}
}

func qrDaoToDomain(q dao.QRCode) domain.QRCode {
	return domain.QRCode{
		ID:       q.ID,
		Token:    q.Token,
		SeatID:   q.SeatID,
		IsActive: q.IsActive,
	}
}

func seatLocationDaoToDomain(q dao.QRCode) domain.SeatLocation {
	return domain.SeatLocation{
		QRCode:  qrDaoToDomain(q),
		Seat:    seatDaoToDomain(q.Seat),
		Lab:     labDaoToDomain(q.Seat.Lab),
		Canteen: canteenDaoToDomain(q.Seat.Lab.Canteen),
	}
}

func optionDaoToDomain(o dao.ItemOption) domain.ItemOption {
	return domain.ItemOption{
		ID:         o.ID,
		Name:       o.Name,
		MenuItemID: o.MenuItemID,
	}
}

func menuItemDaoToDomain(m dao.MenuItem) domain.MenuItem {
	options := make([]domain.ItemOption, len(m.Options))
	for i, o := range m.Options {
		options[i] = optionDaoToDomain(o)
	}

	return domain.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		CanteenID:   m.CanteenID,
		IsAvailable: m.IsAvailable,
		Options:     options,
	}
}

func assignmentDaoToDomain(a dao.ManagerAssignment) domain.ManagerAssignment {
	return domain.ManagerAssignment{
		CanteenID:  a.CanteenID,
		UserID:     a.UserID,
		AssignedAt: a.AssignedAt,
	}
}
