package dto

import "time"

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	PatientName   string    `json:"patient_name"`
	ProcedureName string    `json:"procedure_name"`
	Amount        float64   `json:"amount"`
	HealthPlanID  *uint     `json:"health_plan_id"`
}
