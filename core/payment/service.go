// Package payment derives the admin billing views from the payments and
// students snapshots.
package payment

import (
	"github.com/ecoone/campus/core"
	"github.com/ecoone/campus/core/sheet"
	"github.com/ecoone/campus/core/user"
)

type (
	Payment struct {
		Username string `json:"username"`
		FeeType  string `json:"fee_type"`
		Amount   string `json:"amount"`
		Date     string `json:"date"`
		Status   string `json:"status"`
	}

	// PendingPayment is a pending payment joined with the student's details.
	PendingPayment struct {
		Payment
		Name       string `json:"name"`
		Department string `json:"department"`
	}

	Overview struct {
		TotalStudents   int `json:"total_students"`
		TotalPayments   int `json:"total_payments"`
		PendingPayments int `json:"pending_payments"`
	}
)

type Service struct {
	mirror *sheet.Mirror
}

func NewService(mirror *sheet.Mirror) *Service {
	return &Service{mirror: mirror}
}

func fromRow(r sheet.Row) Payment {
	return Payment{
		Username: r.Get("username"),
		FeeType:  r.Get("fee_type"),
		Amount:   r.Get("amount"),
		Date:     r.Get("date"),
		Status:   r.Get("status"),
	}
}

// All returns every payment in the current snapshot.
func (svc *Service) All() []Payment {
	rows, _ := svc.mirror.Snapshot(sheet.TablePayments)
	payments := make([]Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, fromRow(row))
	}
	return payments
}

// Pending returns pending payments (status matched modulo case/whitespace)
// left-joined with student name and department.
func (svc *Service) Pending() []PendingPayment {
	students, _ := svc.mirror.Snapshot(sheet.TableStudents)
	byUser := make(map[string]sheet.Row, len(students))
	for _, row := range students {
		byUser[row.Get("username")] = row
	}

	var out []PendingPayment
	for _, pay := range svc.All() {
		if core.CleanString(pay.Status, true /* lower */) != "pending" {
			continue
		}
		pp := PendingPayment{Payment: pay}
		if stu, ok := byUser[pay.Username]; ok {
			pp.Name = stu.Get("name")
			pp.Department = stu.Get("department")
		}
		out = append(out, pp)
	}
	return out
}

// Overview computes the admin dashboard metrics.
func (svc *Service) Overview() Overview {
	var totalStudents int
	users, _ := svc.mirror.Snapshot(sheet.TableUsers)
	for _, row := range users {
		if core.CleanString(row.Get("role"), true) == core.CleanString(user.RoleStudent, true) {
			totalStudents++
		}
	}
	return Overview{
		TotalStudents:   totalStudents,
		TotalPayments:   len(svc.All()),
		PendingPayments: len(svc.Pending()),
	}
}
