// Package calendar packs console calendar and clock values into the
// BCD-encoded words consumed by the seed hash message block, and iterates
// candidate date ranges for a search.
package calendar

import "fmt"

// WeekdayWrapMode selects which of two documented constants governs the
// year==0, month<3 case of the weekday calculation. The reference material
// is split on this: one model uses 93, a sibling model uses 94. Both are
// exposed; WrapYear93 is the default used throughout this module, since it
// appears in the model that owns date8 packing (the value actually baked
// into the seed hash message block), while the 94 variant lives in the
// sibling clock model that never performs this computation itself.
type WeekdayWrapMode int

const (
	WrapYear93 WeekdayWrapMode = iota
	WrapYear94
)

// Date is a console calendar date: Year is 0-99 (offset from 2000), Month
// is 1-12, Day is 1-31.
type Date struct {
	Year, Month, Day uint8
}

var daysInMonthTable = [13]uint8{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeap reports whether the given console year (0-99, offset from 2000) is
// a leap year, using the console's own rule: year%4==0 && year%100!=0,
// applied to the raw two-digit year rather than the full 2000+year value.
func IsLeap(year uint8) bool {
	y := int(year)
	return y%4 == 0 && y%100 != 0
}

// DaysInMonth returns the number of days in the given month of the given
// console year (0-99, offset from 2000).
func DaysInMonth(month, year uint8) uint8 {
	if month == 2 && IsLeap(year) {
		return 29
	}
	return daysInMonthTable[month]
}

// Weekday computes the 0(Sunday)-6(Saturday) weekday for d using a Zeller
// congruence variant, honoring the documented year-wrap ambiguity for
// year==0, month<3.
func (d Date) Weekday(mode WeekdayWrapMode) uint8 {
	y := int(d.Year) + 2000
	m := int(d.Month)
	if m < 3 {
		m += 12
		if d.Year == 0 {
			switch mode {
			case WrapYear94:
				y += 94 - 1
			default:
				y += 93 - 1
			}
		} else {
			y--
		}
	}
	k := y % 100
	j := y / 100
	h := (int(d.Day) + (13*(m+1))/5 + k + k/4 + j/4 + 5*j) % 7
	// h: 0=Saturday .. so rotate to 0=Sunday.
	return uint8((h + 6) % 7)
}

// AddDays returns d advanced by n days, rolling over months and years (and
// console year wraps from 99 back to 0).
func (d Date) AddDays(n uint32) Date {
	for ; n > 0; n-- {
		d.Day++
		if d.Day > DaysInMonth(d.Month, d.Year) {
			d.Day = 1
			d.Month++
			if d.Month > 12 {
				d.Month = 1
				d.Year++
				if d.Year > 99 {
					d.Year = 0
				}
			}
		}
	}
	return d
}

func packBCD(v uint8) uint8 {
	return (v/10)<<4 | (v % 10)
}

func unpackBCD(v uint8) uint8 {
	return (v>>4)*10 + (v & 0x0F)
}

// Date8 packs the date into the 4-byte word the seed hash message block
// embeds: (yearBCD<<24)|(monthBCD<<16)|(dayBCD<<8)|weekday.
func (d Date) Date8(mode WeekdayWrapMode) uint32 {
	return uint32(packBCD(d.Year))<<24 |
		uint32(packBCD(d.Month))<<16 |
		uint32(packBCD(d.Day))<<8 |
		uint32(d.Weekday(mode))
}

// DecodeDate8 recovers the year/month/day packed by Date8. The weekday
// byte is derivable and is not needed to invert the encoding.
func DecodeDate8(word uint32) Date {
	return Date{
		Year:  unpackBCD(uint8(word >> 24)),
		Month: unpackBCD(uint8(word >> 16)),
		Day:   unpackBCD(uint8(word >> 8)),
	}
}

// Time is a console clock reading.
type Time struct {
	Hour, Minute, Second uint8
}

// Time9 packs the time into the 4-byte word the message block embeds. Hours
// past noon are folded into the upper half of the BCD range (hour+40) to
// also encode AM/PM, per the console's clock format; the low byte is
// always zero.
func (t Time) Time9() uint32 {
	adjusted := t.Hour
	if adjusted >= 12 {
		adjusted += 40
	}
	return uint32(packBCD(adjusted))<<24 |
		uint32(packBCD(t.Minute))<<16 |
		uint32(packBCD(t.Second))<<8
}

// DecodeTime9 recovers the hour/minute/second packed by Time9.
func DecodeTime9(word uint32) Time {
	adjusted := unpackBCD(uint8(word >> 24))
	hour := adjusted
	if adjusted >= 40 {
		hour = adjusted - 40
	}
	return Time{
		Hour:   hour,
		Minute: unpackBCD(uint8(word >> 16)),
		Second: unpackBCD(uint8(word >> 8)),
	}
}

// Moment is a full calendar date and time of day, the unit a search
// iterates over.
type Moment struct {
	Date Date
	Time Time
}

func (m Moment) String() string {
	return fmt.Sprintf("20%02d-%02d-%02d %02d:%02d:%02d",
		m.Date.Year, m.Date.Month, m.Date.Day, m.Time.Hour, m.Time.Minute, m.Time.Second)
}

// Range describes an inclusive date range and the set of times of day to
// pair with each date; a search enumerates every (date, time) combination
// in the range.
type Range struct {
	Start, End Date
	Times      []Time
}

// Dates returns every date in [r.Start, r.End] inclusive, in calendar
// order. It assumes Start is not later than End within a single century
// (no wraparound support is needed for realistic search windows).
func (r Range) Dates() []Date {
	var out []Date
	d := r.Start
	for {
		out = append(out, d)
		if d == r.End {
			break
		}
		d = d.AddDays(1)
	}
	return out
}

// Moments returns the full cross product of Dates() x Times, in date-major
// order, matching the iteration order a search is expected to report
// results in.
func (r Range) Moments() []Moment {
	dates := r.Dates()
	out := make([]Moment, 0, len(dates)*len(r.Times))
	for _, d := range dates {
		for _, t := range r.Times {
			out = append(out, Moment{Date: d, Time: t})
		}
	}
	return out
}
