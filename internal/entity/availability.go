package entity

// SeatAvailability — снимок занятых мест мероприятия с токеном версии.
// Версия строго возрастает с каждой успешной фиксацией и служит
// precondition для условной записи в реестр
type SeatAvailability struct {
	EventID     int64    `json:"event_id"`
	BookedSeats []string `json:"booked_seats"`
	Version     int64    `json:"version"`
}

// SeatSet возвращает занятые места в виде множества для проверки конфликтов
func (a *SeatAvailability) SeatSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.BookedSeats))
	for _, s := range a.BookedSeats {
		set[s] = struct{}{}
	}
	return set
}
