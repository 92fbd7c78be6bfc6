package models

import (
	"time"

	"stationboard/db/pgw"
	"stationboard/oops"
)

type ServiceId int64

type Service struct {
	Id         ServiceId
	StartDate  time.Time
	EndDate    time.Time
	Weekdays   Weekdays
	Exceptions []ServiceException
}

type ServiceException struct {
	Date time.Time
	Type ExceptionType
}

type ExceptionType int

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

// Weekdays is a bitmask of operating days, bit 0 is Monday.
type Weekdays uint8

func WeekdaysFrom(monday, tuesday, wednesday, thursday, friday, saturday, sunday bool) Weekdays {
	var weekdays Weekdays
	for i, operating := range []bool{monday, tuesday, wednesday, thursday, friday, saturday, sunday} {
		if operating {
			weekdays |= 1 << i
		}
	}
	return weekdays
}

func (w Weekdays) Includes(day time.Weekday) bool {
	// time.Weekday starts the week on Sunday
	bit := (int(day) + 6) % 7
	return w&(1<<bit) != 0
}

// IsAvailableOn reports whether the service runs on the given date. Exceptions override the regular
// schedule in both directions.
func (s *Service) IsAvailableOn(date time.Time) bool {
	date = Midnight(date)
	for _, exception := range s.Exceptions {
		if exception.Date.Equal(date) {
			return exception.Type == ExceptionAdded
		}
	}

	if date.Before(s.StartDate) || date.After(s.EndDate) {
		return false
	}
	return s.Weekdays.Includes(date.Weekday())
}

func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Service_FetchAll loads every service with its exceptions, keyed by id. Called once at startup, the
// timetable is static between feed imports.
func Service_FetchAll(tx pgw.Queryable) (map[ServiceId]*Service, error) {
	rows, err := tx.Query(`
		select s.id, s.monday, s.tuesday, s.wednesday, s.thursday, s.friday, s.saturday, s.sunday,
			s.start_date, s.end_date, se.exception_date, se.exception_type
		from services s
		left join service_exceptions se on se.service_id = s.id
	`)
	if err != nil {
		return nil, oops.Wrap(err)
	}
	defer rows.Close()

	services := make(map[ServiceId]*Service)
	for rows.Next() {
		var id ServiceId
		var monday, tuesday, wednesday, thursday, friday, saturday, sunday bool
		var startDate, endDate time.Time
		var maybeExceptionDate *time.Time
		var maybeExceptionType *ExceptionType
		err := rows.Scan(
			&id, &monday, &tuesday, &wednesday, &thursday, &friday, &saturday, &sunday,
			&startDate, &endDate, &maybeExceptionDate, &maybeExceptionType,
		)
		if err != nil {
			return nil, oops.Wrap(err)
		}

		service, ok := services[id]
		if !ok {
			service = &Service{
				Id:        id,
				StartDate: Midnight(startDate),
				EndDate:   Midnight(endDate),
				Weekdays: WeekdaysFrom(
					monday, tuesday, wednesday, thursday, friday, saturday, sunday,
				),
				Exceptions: nil,
			}
			services[id] = service
		}

		if maybeExceptionDate != nil {
			service.Exceptions = append(service.Exceptions, ServiceException{
				Date: Midnight(*maybeExceptionDate),
				Type: *maybeExceptionType,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Wrap(err)
	}

	return services, nil
}
