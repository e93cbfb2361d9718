package student

import (
	"github.com/pkg/errors"

	"github.com/ecoone/campus/core/sheet"
)

var ErrNotFound = errors.New("student not found")

// Fee status columns addressable via SetFeeStatus.
var FeeColumns = []string{
	"tution_fee_status", "hostel_fee_status", "exam_fee_status", "transport_fee_status",
}

type Service struct {
	gw     *sheet.Gateway
	mirror *sheet.Mirror
}

func NewService(gw *sheet.Gateway) *Service {
	return &Service{gw: gw, mirror: gw.Mirror()}
}

// Get returns the student row for the username together with its current
// mirror position. The username must already be canonical (as stored).
func (svc *Service) Get(username string) (Student, int, error) {
	pos, ok := svc.mirror.FindPosition(sheet.TableStudents, "username", username)
	if !ok {
		return Student{}, -1, errors.Wrap(ErrNotFound, username)
	}
	rows, err := svc.mirror.Snapshot(sheet.TableStudents)
	if err != nil {
		return Student{}, -1, err
	}
	return FromRow(rows[pos]), pos, nil
}

// All returns every student in the current snapshot.
func (svc *Service) All() []Student {
	rows, _ := svc.mirror.Snapshot(sheet.TableStudents)
	students := make([]Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, FromRow(row))
	}
	return students
}

// SetFeeStatus updates one fee status cell for the student.
func (svc *Service) SetFeeStatus(username, feeColumn, status string) error {
	_, pos, err := svc.Get(username)
	if err != nil {
		return err
	}
	return svc.gw.UpdateCell(sheet.TableStudents, pos, feeColumn, status)
}

// AppendBook adds a title to the student's issued books.
func (svc *Service) AppendBook(username, book string) error {
	stu, pos, err := svc.Get(username)
	if err != nil {
		return err
	}
	books := append(stu.Books, book)
	return svc.gw.UpdateCell(sheet.TableStudents, pos, "books_issued", EncodeBooks(books))
}

// SetHostelRoom assigns the student's hostel room.
func (svc *Service) SetHostelRoom(username, room string) error {
	_, pos, err := svc.Get(username)
	if err != nil {
		return err
	}
	return svc.gw.UpdateCell(sheet.TableStudents, pos, "hostel_room", room)
}

// WithBooks returns students holding at least one issued book.
func (svc *Service) WithBooks() []Student {
	var out []Student
	for _, stu := range svc.All() {
		if len(stu.Books) > 0 {
			out = append(out, stu)
		}
	}
	return out
}

// WithRooms returns students with an assigned hostel room.
func (svc *Service) WithRooms() []Student {
	var out []Student
	for _, stu := range svc.All() {
		if stu.HostelRoom != "" {
			out = append(out, stu)
		}
	}
	return out
}
