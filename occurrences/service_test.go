package occurrences

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"alomana/cart"
	dbpkg "alomana/db"
	"alomana/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := dbpkg.AutoMigrate(conn); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@alomana.local", PasswordHash: "x"}
	if err := conn.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createAdmin(t *testing.T, conn *gorm.DB, username string) models.AdminUser {
	t.Helper()
	admin := models.AdminUser{Username: username, PasswordHash: "x"}
	if err := conn.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return admin
}

func createOccurrence(t *testing.T, conn *gorm.DB, userID int64) models.Occurrence {
	t.Helper()
	lines := []cart.Line{line(1, "P1", 1, 1000)}
	occurrence, err := Translate(lines, map[int64]models.OccurrenceMapping{}, ContactInfo{}, userID)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if err := NewService(conn).Create(&occurrence); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return occurrence
}

func historyCount(t *testing.T, conn *gorm.DB, occurrenceID int64) int {
	t.Helper()
	var count int
	err := conn.Model(&models.OccurrenceStatusHistory{}).
		Where("occurrence_id = ?", occurrenceID).Count(&count).Error
	if err != nil {
		t.Fatalf("count history: %v", err)
	}
	return count
}

func TestCreateWritesCreationAudit(t *testing.T) {
	conn := testDB(t)
	user := createUser(t, conn, "ana")

	occurrence := createOccurrence(t, conn, user.ID)
	if occurrence.ID == 0 {
		t.Fatal("occurrence id not assigned")
	}

	var histories []models.OccurrenceStatusHistory
	if err := conn.Where("occurrence_id = ?", occurrence.ID).Find(&histories).Error; err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(histories) != 1 {
		t.Fatalf("expected exactly 1 history row, got %d", len(histories))
	}
	h := histories[0]
	if h.PreviousStatus != nil {
		t.Fatalf("creation row must have nil previous status, got %v", *h.PreviousStatus)
	}
	if h.NewStatus != models.STATUS_NOVO {
		t.Fatalf("creation row must have new status Novo, got %q", h.NewStatus)
	}
	if h.ChangedByAdminID != nil {
		t.Fatalf("creation row must have nil actor, got %v", *h.ChangedByAdminID)
	}
}

func TestTransitionStatus(t *testing.T) {
	t.Run("same status is a reported no-op", func(t *testing.T) {
		conn := testDB(t)
		user := createUser(t, conn, "ana")
		admin := createAdmin(t, conn, "triagem")
		occurrence := createOccurrence(t, conn, user.ID)

		changed, err := NewService(conn).TransitionStatus(models.StaffPrincipal(admin.ID), occurrence.ID, models.STATUS_NOVO)
		if err != nil {
			t.Fatalf("TransitionStatus: %v", err)
		}
		if changed {
			t.Fatal("expected changed=false")
		}
		if got := historyCount(t, conn, occurrence.ID); got != 1 {
			t.Fatalf("no-op must not write audit rows, got %d", got)
		}
	})

	t.Run("valid transition writes exactly one audit row", func(t *testing.T) {
		conn := testDB(t)
		user := createUser(t, conn, "ana")
		admin := createAdmin(t, conn, "triagem")
		occurrence := createOccurrence(t, conn, user.ID)

		changed, err := NewService(conn).TransitionStatus(models.StaffPrincipal(admin.ID), occurrence.ID, models.STATUS_EM_TRIAGEM)
		if err != nil {
			t.Fatalf("TransitionStatus: %v", err)
		}
		if !changed {
			t.Fatal("expected changed=true")
		}

		var reloaded models.Occurrence
		if err := conn.First(&reloaded, occurrence.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Status != models.STATUS_EM_TRIAGEM {
			t.Fatalf("expected status Em triagem, got %q", reloaded.Status)
		}

		var histories []models.OccurrenceStatusHistory
		if err := conn.Where("occurrence_id = ?", occurrence.ID).Order("id asc").Find(&histories).Error; err != nil {
			t.Fatalf("load history: %v", err)
		}
		if len(histories) != 2 {
			t.Fatalf("expected 2 history rows, got %d", len(histories))
		}
		h := histories[1]
		if h.PreviousStatus == nil || *h.PreviousStatus != models.STATUS_NOVO {
			t.Fatalf("expected previous Novo, got %v", h.PreviousStatus)
		}
		if h.NewStatus != models.STATUS_EM_TRIAGEM {
			t.Fatalf("expected new Em triagem, got %q", h.NewStatus)
		}
		if h.ChangedByAdminID == nil || *h.ChangedByAdminID != admin.ID {
			t.Fatalf("expected actor %d, got %v", admin.ID, h.ChangedByAdminID)
		}
	})

	t.Run("invalid status is rejected and mutates nothing", func(t *testing.T) {
		conn := testDB(t)
		user := createUser(t, conn, "ana")
		admin := createAdmin(t, conn, "triagem")
		occurrence := createOccurrence(t, conn, user.ID)

		_, err := NewService(conn).TransitionStatus(models.StaffPrincipal(admin.ID), occurrence.ID, "Arquivado")
		if !IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}

		var reloaded models.Occurrence
		if err := conn.First(&reloaded, occurrence.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Status != models.STATUS_NOVO {
			t.Fatalf("status must stay Novo, got %q", reloaded.Status)
		}
		if got := historyCount(t, conn, occurrence.ID); got != 1 {
			t.Fatalf("rejected transition must not write audit rows, got %d", got)
		}
	})

	t.Run("reporter cannot transition", func(t *testing.T) {
		conn := testDB(t)
		user := createUser(t, conn, "ana")
		occurrence := createOccurrence(t, conn, user.ID)

		_, err := NewService(conn).TransitionStatus(models.ReporterPrincipal(user.ID), occurrence.ID, models.STATUS_CONCLUIDO)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("concluded can be reopened", func(t *testing.T) {
		conn := testDB(t)
		user := createUser(t, conn, "ana")
		admin := createAdmin(t, conn, "triagem")
		occurrence := createOccurrence(t, conn, user.ID)
		service := NewService(conn)
		staff := models.StaffPrincipal(admin.ID)

		if _, err := service.TransitionStatus(staff, occurrence.ID, models.STATUS_CONCLUIDO); err != nil {
			t.Fatalf("to Concluído: %v", err)
		}
		changed, err := service.TransitionStatus(staff, occurrence.ID, models.STATUS_EM_TRIAGEM)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		if !changed {
			t.Fatal("expected reopen to change status")
		}
	})

	t.Run("unknown occurrence", func(t *testing.T) {
		conn := testDB(t)
		admin := createAdmin(t, conn, "triagem")

		_, err := NewService(conn).TransitionStatus(models.StaffPrincipal(admin.ID), 9999, models.STATUS_CONCLUIDO)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestGetDetailAccessControl(t *testing.T) {
	conn := testDB(t)
	owner := createUser(t, conn, "ana")
	other := createUser(t, conn, "bia")
	admin := createAdmin(t, conn, "triagem")
	occurrence := createOccurrence(t, conn, owner.ID)
	service := NewService(conn)

	t.Run("owner reads own occurrence", func(t *testing.T) {
		detail, err := service.GetDetail(models.ReporterPrincipal(owner.ID), occurrence.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if detail.Occurrence.ID != occurrence.ID {
			t.Fatalf("wrong occurrence loaded: %d", detail.Occurrence.ID)
		}
		if len(detail.History) != 1 {
			t.Fatalf("expected creation history, got %d rows", len(detail.History))
		}
		if detail.Notes != nil {
			t.Fatal("reporter must not receive staff notes")
		}
	})

	t.Run("cross access matches nonexistent id", func(t *testing.T) {
		_, errCross := service.GetDetail(models.ReporterPrincipal(other.ID), occurrence.ID)
		_, errMissing := service.GetDetail(models.ReporterPrincipal(other.ID), 987654)
		if !errors.Is(errCross, ErrNotFound) {
			t.Fatalf("cross access: expected ErrNotFound, got %v", errCross)
		}
		if !errors.Is(errMissing, ErrNotFound) {
			t.Fatalf("missing id: expected ErrNotFound, got %v", errMissing)
		}
		if errCross.Error() != errMissing.Error() {
			t.Fatal("cross access must be indistinguishable from a missing id")
		}
	})

	t.Run("staff reads any occurrence with notes", func(t *testing.T) {
		staff := models.StaffPrincipal(admin.ID)
		if _, err := service.AddStaffNote(staff, occurrence.ID, "verificar contato"); err != nil {
			t.Fatalf("AddStaffNote: %v", err)
		}
		detail, err := service.GetDetail(staff, occurrence.ID)
		if err != nil {
			t.Fatalf("GetDetail: %v", err)
		}
		if len(detail.Notes) != 1 {
			t.Fatalf("expected 1 note for staff, got %d", len(detail.Notes))
		}
	})

	t.Run("anonymous is refused outright", func(t *testing.T) {
		_, err := service.GetDetail(models.Anonymous(), occurrence.ID)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestAddStaffNote(t *testing.T) {
	conn := testDB(t)
	user := createUser(t, conn, "ana")
	admin := createAdmin(t, conn, "triagem")
	occurrence := createOccurrence(t, conn, user.ID)
	service := NewService(conn)

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := service.AddStaffNote(models.StaffPrincipal(admin.ID), occurrence.ID, "   ")
		if !IsValidationError(err) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reporter cannot add notes", func(t *testing.T) {
		_, err := service.AddStaffNote(models.ReporterPrincipal(user.ID), occurrence.ID, "tentativa")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("note is recorded with the actor", func(t *testing.T) {
		note, err := service.AddStaffNote(models.StaffPrincipal(admin.ID), occurrence.ID, "  encaminhar para rede de apoio  ")
		if err != nil {
			t.Fatalf("AddStaffNote: %v", err)
		}
		if note.NoteText != "encaminhar para rede de apoio" {
			t.Fatalf("expected trimmed text, got %q", note.NoteText)
		}
		if note.AdminUserID != admin.ID {
			t.Fatalf("expected author %d, got %d", admin.ID, note.AdminUserID)
		}
	})
}

func TestAddReporterMessage(t *testing.T) {
	conn := testDB(t)
	owner := createUser(t, conn, "ana")
	other := createUser(t, conn, "bia")
	admin := createAdmin(t, conn, "triagem")
	occurrence := createOccurrence(t, conn, owner.ID)
	service := NewService(conn)

	t.Run("owner sends a message", func(t *testing.T) {
		message, err := service.AddReporterMessage(models.ReporterPrincipal(owner.ID), occurrence.ID, "preciso de retorno")
		if err != nil {
			t.Fatalf("AddReporterMessage: %v", err)
		}
		if message.UserID != owner.ID || message.OccurrenceID != occurrence.ID {
			t.Fatalf("unexpected message %+v", message)
		}
	})

	t.Run("non-owner is told not found", func(t *testing.T) {
		_, err := service.AddReporterMessage(models.ReporterPrincipal(other.ID), occurrence.ID, "oi")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("staff cannot use the reporter channel", func(t *testing.T) {
		_, err := service.AddReporterMessage(models.StaffPrincipal(admin.ID), occurrence.ID, "oi")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("empty and oversized messages rejected", func(t *testing.T) {
		p := models.ReporterPrincipal(owner.ID)
		if _, err := service.AddReporterMessage(p, occurrence.ID, "  "); !IsValidationError(err) {
			t.Fatalf("empty: expected ValidationError, got %v", err)
		}
		long := strings.Repeat("a", MaxMessageLength+1)
		if _, err := service.AddReporterMessage(p, occurrence.ID, long); !IsValidationError(err) {
			t.Fatalf("oversized: expected ValidationError, got %v", err)
		}
		exact := strings.Repeat("a", MaxMessageLength)
		if _, err := service.AddReporterMessage(p, occurrence.ID, exact); err != nil {
			t.Fatalf("exactly %d chars must pass: %v", MaxMessageLength, err)
		}
	})
}

func TestListForStaff(t *testing.T) {
	conn := testDB(t)
	ana := createUser(t, conn, "ana")
	bia := createUser(t, conn, "bia")
	admin := createAdmin(t, conn, "triagem")
	service := NewService(conn)
	staff := models.StaffPrincipal(admin.ID)

	first := createOccurrence(t, conn, ana.ID)
	second := createOccurrence(t, conn, bia.ID)

	if _, err := service.TransitionStatus(staff, second.ID, models.STATUS_EM_TRIAGEM); err != nil {
		t.Fatalf("TransitionStatus: %v", err)
	}

	t.Run("reporter is refused", func(t *testing.T) {
		_, err := service.ListForStaff(models.ReporterPrincipal(ana.ID), "", "")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("no filters returns everything newest first", func(t *testing.T) {
		list, err := service.ListForStaff(staff, "", "")
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 occurrences, got %d", len(list))
		}
		if list[0].ID != second.ID {
			t.Fatalf("expected newest first, got id %d", list[0].ID)
		}
	})

	t.Run("status filter", func(t *testing.T) {
		list, err := service.ListForStaff(staff, models.STATUS_EM_TRIAGEM, "")
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 1 || list[0].ID != second.ID {
			t.Fatalf("unexpected filtered list %+v", list)
		}
	})

	t.Run("unknown status filter is ignored", func(t *testing.T) {
		list, err := service.ListForStaff(staff, "Inexistente", "")
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected unfiltered list, got %d", len(list))
		}
	})

	t.Run("numeric term filters by exact id", func(t *testing.T) {
		list, err := service.ListForStaff(staff, "", strconv.FormatInt(first.ID, 10))
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 1 || list[0].ID != first.ID {
			t.Fatalf("unexpected list %+v", list)
		}
	})

	t.Run("text term searches owner username", func(t *testing.T) {
		list, err := service.ListForStaff(staff, "", "BIA")
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 1 || list[0].ID != second.ID {
			t.Fatalf("unexpected list %+v", list)
		}
	})

	t.Run("text term searches category", func(t *testing.T) {
		list, err := service.ListForStaff(staff, "", "ocorrencia geral")
		if err != nil {
			t.Fatalf("ListForStaff: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected both occurrences, got %d", len(list))
		}
	})
}

func TestListForReporter(t *testing.T) {
	conn := testDB(t)
	ana := createUser(t, conn, "ana")
	bia := createUser(t, conn, "bia")
	service := NewService(conn)

	mine := createOccurrence(t, conn, ana.ID)
	createOccurrence(t, conn, bia.ID)

	list, err := service.ListForReporter(models.ReporterPrincipal(ana.ID))
	if err != nil {
		t.Fatalf("ListForReporter: %v", err)
	}
	if len(list) != 1 || list[0].ID != mine.ID {
		t.Fatalf("expected only own occurrence, got %+v", list)
	}

	if _, err := service.ListForReporter(models.Anonymous()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for anonymous, got %v", err)
	}
}
