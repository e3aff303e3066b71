package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"inventory/internal/models"
	"inventory/internal/repositories"
)

// ─── Results ──────────────────────────────────────────────────────────────────

type CheckoutStatus string

const (
	// CheckoutStatusSuccess means the part is now held by the requested user.
	CheckoutStatusSuccess CheckoutStatus = "CHECKOUT_SUCCESS"

	// CheckoutStatusHeld is a negotiation signal, not an error: the part is
	// already out and nothing was mutated. The caller is expected to confirm
	// and re-invoke with force=true.
	CheckoutStatusHeld CheckoutStatus = "PART_HOLDER"
)

type CheckoutResult struct {
	Status CheckoutStatus `json:"status"`
	// HolderName is the current holder's display name, set when Status is
	// CheckoutStatusHeld.
	HolderName string `json:"holder_name,omitempty"`
}

type CheckinStatus string

const (
	CheckinStatusSuccess CheckinStatus = "CHECKED_IN"

	// CheckinStatusNotCheckedOut: the part exists but has no open checkout.
	// Checking in an available part is an idempotent no-op.
	CheckinStatusNotCheckedOut CheckinStatus = "NOT_CHECKED_OUT"

	// CheckinStatusUnknownPart: the UPC was never added at all, which is a
	// different message than "never checked out".
	CheckinStatusUnknownPart CheckinStatus = "UNKNOWN_PART"
)

type CheckinResult struct {
	Status CheckinStatus `json:"status"`
	// Placement is the part's home location, so the caller can say where to
	// return it. Empty for unknown parts.
	Placement string `json:"placement,omitempty"`
}

// ─── Detail views ─────────────────────────────────────────────────────────────

type CheckedOutPart struct {
	UPC          string    `json:"upc"`
	CheckedOutAt time.Time `json:"checked_out_at"`
}

type UserInfo struct {
	UserID     string           `json:"user_id"`
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	CheckedOut []CheckedOutPart `json:"checked_out"`
}

type PartInfo struct {
	UPC          string    `json:"upc"`
	Placement    string    `json:"placement"`
	Manufacturer string    `json:"manufacturer"`
	MfrPN        string    `json:"mfr_pn"`
	Description  string    `json:"description"`
	URL          string    `json:"url"`
	Quantity     int       `json:"quantity"`
	DateAdded    time.Time `json:"date_added"`
	// Holder is "First Last (id)" or "Not checked out".
	Holder string `json:"holder"`
}

type CheckoutInfo struct {
	UPC          string    `json:"upc"`
	Description  string    `json:"description"`
	HolderID     string    `json:"holder_id"`
	HolderName   string    `json:"holder_name"`
	CheckedOutAt time.Time `json:"checked_out_at"`
}

type ManufacturerInfo struct {
	MfrID         int    `json:"mfr_id"`
	MfrName       string `json:"mfr_name"`
	NumberOfParts int    `json:"number_of_parts"`
}

// ─── Inputs ───────────────────────────────────────────────────────────────────

type AddPartInput struct {
	Description string
	MfrName     string
	MfrPN       string
	Placement   string
	URL         string
	Quantity    int
}

type UpdatePartInput struct {
	UPC         string
	Description string
	MfrName     string
	MfrPN       string
	Placement   string
	URL         string
	Quantity    int
}

// ─── Service Interface ────────────────────────────────────────────────────────

// InventoryService is the inventory data-and-rules engine: identifier
// generation, search, and the checkout/return state machine.
type InventoryService interface {
	AddUser(first, last, email string) (string, error)
	UpdateUser(id, first, last, email string) error
	UserData(id string) (*UserInfo, error)

	AddPart(input AddPartInput) (string, error)
	UpdatePart(input UpdatePartInput) error
	PartData(upc string) (*PartInfo, error)
	PartLabel(upc string) (*Label, error)

	Checkout(upc, userID string, force bool) (*CheckoutResult, error)
	Checkin(upc string) (*CheckinResult, error)

	Delete(key string, kind RecordKind) error
	ClearCheckouts(key string) error

	TransferParts(oldMfrName, newMfrName string) error
	RenameManufacturer(mfrID int, newName string) error
	ManufacturerData(name string) (*ManufacturerInfo, error)
	CheckoutData(upc string) (*CheckoutInfo, error)

	Search(kind RecordKind, query string, filters map[string]bool) ([]Record, error)
}

// ─── Implementation ───────────────────────────────────────────────────────────

type inventoryService struct {
	db           *gorm.DB
	userRepo     repositories.UserRepository
	mfrRepo      repositories.ManufacturerRepository
	partRepo     repositories.PartRepository
	checkoutRepo repositories.CheckoutRepository
	printer      LabelPrinter
	now          func() time.Time
}

// NewInventoryService wires up all dependencies and returns an InventoryService.
// printer may be nil when no label printing is wanted.
func NewInventoryService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	mfrRepo repositories.ManufacturerRepository,
	partRepo repositories.PartRepository,
	checkoutRepo repositories.CheckoutRepository,
	printer LabelPrinter,
) InventoryService {
	return &inventoryService{
		db:           db,
		userRepo:     userRepo,
		mfrRepo:      mfrRepo,
		partRepo:     partRepo,
		checkoutRepo: checkoutRepo,
		printer:      printer,
		now:          time.Now,
	}
}

// ─── Users ────────────────────────────────────────────────────────────────────

// AddUser registers a user and returns the derived user id. The name guard is
// a business rule (no two users with the same first+last name) distinct from
// the id-collision probe; the email guard is an exact match.
func (s *inventoryService) AddUser(first, last, email string) (string, error) {
	first = titleCase(first)
	last = titleCase(last)
	if first == "" || last == "" {
		return "", ErrMissingName
	}

	var id string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taken, err := s.userRepo.EmailTaken(tx, email, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailAlreadyTaken
		}

		taken, err = s.userRepo.NameTaken(tx, first, last, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrNameAlreadyTaken
		}

		id, err = s.generateUserID(tx, first, last)
		if err != nil {
			return err
		}
		return s.userRepo.Create(tx, &models.User{
			UserID:    id,
			FirstName: first,
			LastName:  last,
			Email:     email,
		})
	})
	if err != nil {
		return "", err
	}
	log.Printf("[INFO] AddUser: created user %s (%s %s)", id, first, last)
	return id, nil
}

// UpdateUser edits a profile. The user id itself is immutable; the duplicate
// guards exclude the user's own row.
func (s *inventoryService) UpdateUser(id, first, last, email string) error {
	first = titleCase(first)
	last = titleCase(last)
	if first == "" || last == "" {
		return ErrMissingName
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByID(tx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		taken, err := s.userRepo.EmailTaken(tx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailAlreadyTaken
		}

		taken, err = s.userRepo.NameTaken(tx, first, last, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrNameAlreadyTaken
		}

		return s.userRepo.Update(tx, &models.User{
			UserID:    id,
			FirstName: first,
			LastName:  last,
			Email:     email,
		})
	})
}

func (s *inventoryService) UserData(id string) (*UserInfo, error) {
	user, err := s.userRepo.GetByID(nil, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	checkouts, err := s.checkoutRepo.ListByUser(nil, id)
	if err != nil {
		return nil, err
	}

	info := &UserInfo{
		UserID:     user.UserID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		CheckedOut: make([]CheckedOutPart, 0, len(checkouts)),
	}
	for _, c := range checkouts {
		info.CheckedOut = append(info.CheckedOut, CheckedOutPart{
			UPC:          c.CheckedOutPart,
			CheckedOutAt: c.CheckoutTimestamp,
		})
	}
	return info, nil
}

// ─── Parts ────────────────────────────────────────────────────────────────────

// AddPart catalogues a new part: resolves (or creates) the manufacturer,
// composes a UPC, inserts, and refreshes the manufacturer's part count, all
// in one transaction. The label is printed after commit; a printer failure
// never rolls back a catalogued part.
func (s *inventoryService) AddPart(input AddPartInput) (string, error) {
	desc := sanitizeDescription(input.Description)
	placement, err := normalizePlacement(input.Placement)
	if err != nil {
		return "", err
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	var upc string
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if placement != "" {
			taken, err := s.partRepo.PlacementTaken(tx, placement, "")
			if err != nil {
				return err
			}
			if taken {
				return ErrPlacementAlreadyTaken
			}
		}

		mfr, err := s.resolveManufacturer(tx, input.MfrName)
		if err != nil {
			return err
		}

		upc, err = s.generateUPC(tx, mfr.MfrID)
		if err != nil {
			return err
		}

		part := &models.Part{
			PartUPC:     upc,
			Placement:   placement,
			MfrPN:       input.MfrPN,
			MfrID:       mfr.MfrID,
			Description: desc,
			URL:         normalizeURL(input.URL),
			Quantity:    input.Quantity,
			DateAdded:   s.now().UTC(),
		}
		// Savepoint around the insert so a constraint violation does not
		// abort the surrounding transaction on postgres.
		insert := func() error {
			return tx.Transaction(func(tx2 *gorm.DB) error {
				return s.partRepo.Create(tx2, part)
			})
		}
		if err := insert(); err != nil {
			// A concurrent insert can win the composed code; the random
			// fallback space is the retry, then the constraint decides.
			if isUniqueViolation(err) {
				log.Printf("[WARN] AddPart: upc %s collided, regenerating", upc)
				upc, err = s.generateUPC(tx, mfr.MfrID)
				if err != nil {
					return err
				}
				part.PartUPC = upc
				if err := insert(); err != nil {
					return err
				}
			} else {
				return err
			}
		}

		count, err := s.partRepo.CountByManufacturer(tx, mfr.MfrID)
		if err != nil {
			return err
		}
		return s.mfrRepo.SetPartCount(tx, mfr.MfrID, int(count))
	})
	if err != nil {
		return "", err
	}

	log.Printf("[INFO] AddPart: catalogued part %s (%q)", upc, desc)
	if s.printer != nil {
		if err := s.printer.Print(Label{UPC: upc, Placement: placement, Description: desc}); err != nil {
			log.Printf("[WARN] AddPart: label print failed for %s: %v", upc, err)
		}
	}
	return upc, nil
}

// UpdatePart edits every field except the UPC and date_added. A manufacturer
// name that doesn't resolve creates a new manufacturer, same as AddPart.
func (s *inventoryService) UpdatePart(input UpdatePartInput) error {
	upc := normalizeUPC(input.UPC)
	placement, err := normalizePlacement(input.Placement)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.partRepo.GetByUPC(tx, upc)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPartNotFound
			}
			return err
		}

		if placement != "" {
			taken, err := s.partRepo.PlacementTaken(tx, placement, upc)
			if err != nil {
				return err
			}
			if taken {
				return ErrPlacementAlreadyTaken
			}
		}

		mfr, err := s.resolveManufacturer(tx, input.MfrName)
		if err != nil {
			return err
		}

		if err := s.partRepo.Update(tx, &models.Part{
			PartUPC:     upc,
			Placement:   placement,
			MfrPN:       input.MfrPN,
			MfrID:       mfr.MfrID,
			Description: sanitizeDescription(input.Description),
			URL:         normalizeURL(input.URL),
			Quantity:    input.Quantity,
		}); err != nil {
			return err
		}

		// A manufacturer change moves a part between counts; refresh both.
		for _, id := range []int{existing.MfrID, mfr.MfrID} {
			count, err := s.partRepo.CountByManufacturer(tx, id)
			if err != nil {
				return err
			}
			if err := s.mfrRepo.SetPartCount(tx, id, int(count)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *inventoryService) PartData(upc string) (*PartInfo, error) {
	upc = normalizeUPC(upc)
	part, err := s.partRepo.GetByUPC(nil, upc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}

	holder := "Not checked out"
	checkout, err := s.checkoutRepo.GetByPart(nil, upc)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if checkout != nil {
		user, err := s.userRepo.GetByID(nil, checkout.CurrentHolder)
		if err != nil {
			return nil, err
		}
		holder = fmt.Sprintf("%s %s (%s)", user.FirstName, user.LastName, user.UserID)
	}

	mfrPN := part.MfrPN
	if mfrPN == "" {
		mfrPN = "Unknown"
	}
	return &PartInfo{
		UPC:          part.PartUPC,
		Placement:    part.Placement,
		Manufacturer: part.Manufacturer.MfrName,
		MfrPN:        mfrPN,
		Description:  part.Description,
		URL:          part.URL,
		Quantity:     part.Quantity,
		DateAdded:    part.DateAdded,
		Holder:       holder,
	}, nil
}

// PartLabel supplies the printing collaborator's payload for an existing part.
func (s *inventoryService) PartLabel(upc string) (*Label, error) {
	part, err := s.partRepo.GetByUPC(nil, normalizeUPC(upc))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return &Label{UPC: part.PartUPC, Placement: part.Placement, Description: part.Description}, nil
}

// ─── Checkout / Return ────────────────────────────────────────────────────────

// Checkout moves a part into the CHECKED_OUT state. If the part is already
// out, nothing is mutated and the current holder's name comes back as a
// negotiation signal; force=true reassigns the open checkout row in place.
func (s *inventoryService) Checkout(upc, userID string, force bool) (*CheckoutResult, error) {
	upc = normalizeUPC(upc)
	var result *CheckoutResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.GetByID(tx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		exists, err := s.partRepo.Exists(tx, upc)
		if err != nil {
			return err
		}
		if !exists {
			return ErrPartNotFound
		}

		checkout, err := s.checkoutRepo.GetByPart(tx, upc)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if checkout != nil {
			holder, err := s.userRepo.GetByID(tx, checkout.CurrentHolder)
			if err != nil {
				return err
			}
			if !force {
				result = &CheckoutResult{
					Status:     CheckoutStatusHeld,
					HolderName: holder.FirstName + " " + holder.LastName,
				}
				return nil
			}
			if err := s.checkoutRepo.UpdateHolder(tx, upc, userID, s.now().UTC()); err != nil {
				return err
			}
			log.Printf("[INFO] Checkout: part %s force-transferred %s -> %s", upc, checkout.CurrentHolder, userID)
			result = &CheckoutResult{Status: CheckoutStatusSuccess}
			return nil
		}

		// The insert runs in a savepoint: postgres aborts the whole
		// transaction after a constraint violation, and the loser still has
		// to re-read the winner below.
		err = tx.Transaction(func(tx2 *gorm.DB) error {
			return s.checkoutRepo.Create(tx2, &models.Checkout{
				CheckedOutPart:    upc,
				CurrentHolder:     userID,
				CheckoutTimestamp: s.now().UTC(),
			})
		})
		if err != nil {
			// The unique constraint on checked_out_part is the real arbiter
			// under concurrency: the insert loser re-reads and negotiates.
			if isUniqueViolation(err) {
				winner, rerr := s.checkoutRepo.GetByPart(tx, upc)
				if rerr != nil {
					return rerr
				}
				holder, rerr := s.userRepo.GetByID(tx, winner.CurrentHolder)
				if rerr != nil {
					return rerr
				}
				result = &CheckoutResult{
					Status:     CheckoutStatusHeld,
					HolderName: holder.FirstName + " " + holder.LastName,
				}
				return nil
			}
			return err
		}
		log.Printf("[INFO] Checkout: part %s checked out to %s", upc, userID)
		result = &CheckoutResult{Status: CheckoutStatusSuccess}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Checkin returns a part. Unknown UPCs and already-available parts are
// message-only outcomes, never errors; checking in twice is a no-op.
func (s *inventoryService) Checkin(upc string) (*CheckinResult, error) {
	upc = normalizeUPC(upc)
	var result *CheckinResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		part, err := s.partRepo.GetByUPC(tx, upc)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = &CheckinResult{Status: CheckinStatusUnknownPart}
				return nil
			}
			return err
		}

		_, err = s.checkoutRepo.GetByPart(tx, upc)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result = &CheckinResult{Status: CheckinStatusNotCheckedOut, Placement: part.Placement}
				return nil
			}
			return err
		}

		if err := s.checkoutRepo.DeleteByPart(tx, upc); err != nil {
			return err
		}
		log.Printf("[INFO] Checkin: part %s returned to %s", upc, part.Placement)
		result = &CheckinResult{Status: CheckinStatusSuccess, Placement: part.Placement}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ─── Deletion ─────────────────────────────────────────────────────────────────

// Delete removes a user, part, or manufacturer. A live checkout referencing
// the key (for a manufacturer: any part still assigned) blocks the delete
// with ErrPartsStillCheckedOut — an explicit guard, not a surfaced FK error.
// Callers clear with ClearCheckouts (or TransferParts) and retry.
func (s *inventoryService) Delete(key string, kind RecordKind) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch kind {
		case KindUser:
			if _, err := s.userRepo.GetByID(tx, key); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUserNotFound
				}
				return err
			}
			count, err := s.checkoutRepo.CountByUser(tx, key)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrPartsStillCheckedOut
			}
			return s.userRepo.Delete(tx, key)

		case KindPart:
			upc := normalizeUPC(key)
			exists, err := s.partRepo.Exists(tx, upc)
			if err != nil {
				return err
			}
			if !exists {
				return ErrPartNotFound
			}
			if _, err := s.checkoutRepo.GetByPart(tx, upc); err == nil {
				return ErrPartsStillCheckedOut
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			return s.partRepo.Delete(tx, upc)

		case KindManufacturer:
			mfr, err := s.mfrRepo.GetByName(tx, key)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrManufacturerNotFound
				}
				return err
			}
			count, err := s.partRepo.CountByManufacturer(tx, mfr.MfrID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrPartsStillCheckedOut
			}
			return s.mfrRepo.Delete(tx, mfr.MfrID)

		default:
			return fmt.Errorf("delete: unsupported kind %q", kind)
		}
	})
	if err != nil {
		// Backstop: engines that enforce FKs reject the delete before the
		// explicit guard can see a racing checkout.
		if isForeignKeyViolation(err) {
			return ErrPartsStillCheckedOut
		}
		return err
	}
	log.Printf("[INFO] Delete: removed %s %q", kind, key)
	return nil
}

// ClearCheckouts bulk-checks-in every checkout referencing the key: all parts
// a user holds, or the single open checkout of a part. Numeric keys are part
// UPCs; user ids always start with a letter.
func (s *inventoryService) ClearCheckouts(key string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if isNumeric(key) {
			return s.checkoutRepo.DeleteByPart(tx, normalizeUPC(key))
		}

		checkouts, err := s.checkoutRepo.ListByUser(tx, key)
		if err != nil {
			return err
		}
		for _, c := range checkouts {
			if err := s.checkoutRepo.DeleteByPart(tx, c.CheckedOutPart); err != nil {
				return err
			}
		}
		log.Printf("[INFO] ClearCheckouts: checked in %d part(s) for %s", len(checkouts), key)
		return nil
	})
}

// ─── Manufacturers ────────────────────────────────────────────────────────────

// TransferParts re-points every part from one manufacturer to another in a
// single bulk update, then refreshes both counts. Used to empty out a
// manufacturer before deleting it.
func (s *inventoryService) TransferParts(oldMfrName, newMfrName string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		oldMfr, err := s.findManufacturer(tx, oldMfrName)
		if err != nil {
			return err
		}
		newMfr, err := s.findManufacturer(tx, newMfrName)
		if err != nil {
			return err
		}

		if err := s.partRepo.TransferManufacturer(tx, oldMfr.MfrID, newMfr.MfrID); err != nil {
			return err
		}
		for _, id := range []int{oldMfr.MfrID, newMfr.MfrID} {
			count, err := s.partRepo.CountByManufacturer(tx, id)
			if err != nil {
				return err
			}
			if err := s.mfrRepo.SetPartCount(tx, id, int(count)); err != nil {
				return err
			}
		}
		log.Printf("[INFO] TransferParts: %q -> %q", oldMfrName, newMfrName)
		return nil
	})
}

func (s *inventoryService) RenameManufacturer(mfrID int, newName string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.mfrRepo.GetByID(tx, mfrID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrManufacturerNotFound
			}
			return err
		}

		other, err := s.mfrRepo.GetByName(tx, newName)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if other != nil && other.MfrID != mfrID {
			return ErrNameAlreadyTaken
		}

		return s.mfrRepo.UpdateName(tx, mfrID, newName)
	})
}

// ManufacturerData recomputes the denormalized part count before reporting,
// so the display never trusts a stale counter.
func (s *inventoryService) ManufacturerData(name string) (*ManufacturerInfo, error) {
	var info *ManufacturerInfo
	err := s.db.Transaction(func(tx *gorm.DB) error {
		mfr, err := s.mfrRepo.GetByName(tx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrManufacturerNotFound
			}
			return err
		}

		count, err := s.partRepo.CountByManufacturer(tx, mfr.MfrID)
		if err != nil {
			return err
		}
		if err := s.mfrRepo.SetPartCount(tx, mfr.MfrID, int(count)); err != nil {
			return err
		}

		info = &ManufacturerInfo{
			MfrID:         mfr.MfrID,
			MfrName:       mfr.MfrName,
			NumberOfParts: int(count),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *inventoryService) CheckoutData(upc string) (*CheckoutInfo, error) {
	upc = normalizeUPC(upc)
	checkout, err := s.checkoutRepo.GetByPart(nil, upc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	part, err := s.partRepo.GetByUPC(nil, upc)
	if err != nil {
		return nil, err
	}
	holder, err := s.userRepo.GetByID(nil, checkout.CurrentHolder)
	if err != nil {
		return nil, err
	}

	return &CheckoutInfo{
		UPC:          checkout.CheckedOutPart,
		Description:  part.Description,
		HolderID:     holder.UserID,
		HolderName:   holder.FirstName + " " + holder.LastName,
		CheckedOutAt: checkout.CheckoutTimestamp,
	}, nil
}

// findManufacturer resolves a name through the same normalization as
// resolveManufacturer but never creates a row.
func (s *inventoryService) findManufacturer(tx *gorm.DB, name string) (*models.Manufacturer, error) {
	existing, err := s.mfrRepo.List(tx)
	if err != nil {
		return nil, err
	}
	normalized := NormalizeName(name)
	for i := range existing {
		if NormalizeName(existing[i].MfrName) == normalized {
			return &existing[i], nil
		}
	}
	return nil, ErrManufacturerNotFound
}

// ─── Input scrubbing ──────────────────────────────────────────────────────────

const descriptionPunctuation = " !\"#$%&'()*+,-./:;<=>?@[]{}\\^_`|~"

// maxPlacementLen matches the placement column width in the data model.
const maxPlacementLen = 8

// normalizePlacement trims, uppercases, and length-checks a placement so an
// overlong value fails here instead of as a driver truncation error.
func normalizePlacement(placement string) (string, error) {
	placement = strings.ToUpper(strings.TrimSpace(placement))
	if len(placement) > maxPlacementLen {
		return "", ErrPlacementTooLong
	}
	return placement, nil
}

// sanitizeDescription keeps letters, digits, and common punctuation. Labels
// and search both consume descriptions, so oddball control characters go.
func sanitizeDescription(desc string) string {
	var b strings.Builder
	for _, r := range desc {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(descriptionPunctuation, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeURL forces stored urls to start with https://.
func normalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "https://"):
		return url
	case strings.HasPrefix(lower, "http://"):
		return "https://" + url[len("http://"):]
	default:
		return "https://" + url
	}
}
