package stdlib

import (
	"errors"
	"math"
	"time"

	"github.com/exprel/exprel"
)

// Datetimes are plain numbers: the integral part counts days since
// midnight, January 1, 1970 UTC, the fractional part is the time of day
// as a fraction of 24 hours (0.25 = 06:00, 0.75 = 18:00). Date offsets
// are therefore ordinary arithmetic: `encode_date(2023, 12, 24) + 7`.
// All conversions use UTC. Format strings are Go reference layouts.
const millisecondsPerDay = 24 * 60 * 60 * 1000

func timeFunctions() []exprel.Function {
	return []exprel.Function{
		exprel.NewFunction(numberFn(math.Trunc), exprel.RequiredArity(1), "date(datetime: Number): Number"),
		exprel.NewFunction(numberFn(frac), exprel.RequiredArity(1), "time(datetime: Number): Number"),
		exprel.NewFunction(dateToString, exprel.RequiredArity(2), "date_to_string(layout: String, datetime: Number): String"),
		exprel.NewFunction(dateToString, exprel.RequiredArity(2), "time_to_string(layout: String, datetime: Number): String"),
		exprel.NewFunction(stringToDate, exprel.OptionalArity(1, 1), "string_to_date(date: String, layout: String = '2006-01-02'): Number"),
		exprel.NewFunction(stringToTime, exprel.OptionalArity(1, 1), "string_to_time(time: String, layout: String = '15:04:05'): Number"),
		exprel.NewFunction(stringToDatetime, exprel.OptionalArity(1, 1), "string_to_datetime(datetime: String, layout: String = '2006-01-02 15:04:05'): Number"),
		exprel.NewFunction(dateFromRFC2822, exprel.RequiredArity(1), "date_from_rfc2822(datetime: String): Number"),
		exprel.NewFunction(dateFromRFC3339, exprel.RequiredArity(1), "date_from_rfc3339(datetime: String): Number"),
		exprel.NewFunction(dateToRFC2822, exprel.RequiredArity(1), "date_to_rfc2822(datetime: Number): String"),
		exprel.NewFunction(dateToRFC3339, exprel.RequiredArity(1), "date_to_rfc3339(datetime: Number): String"),
		exprel.NewFunction(dayOfWeek, exprel.RequiredArity(1), "day_of_week(datetime: Number): Number"),
		exprel.NewFunction(encodeDate, exprel.RequiredArity(3), "encode_date(year: Number, month: Number, day: Number): Number"),
		exprel.NewFunction(encodeTime, exprel.OptionalArity(3, 1), "encode_time(hour: Number, minute: Number, second: Number, millisecond: Number = 0): Number"),
		exprel.NewFunction(incMonth, exprel.OptionalArity(1, 1), "inc_month(datetime: Number, increment: Number = 1): Number"),
		exprel.NewFunction(isLeapYear, exprel.RequiredArity(1), "is_leap_year(datetime: Number): Boolean"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Year() }), exprel.RequiredArity(1), "year(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return int(t.Month()) }), exprel.RequiredArity(1), "month(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Day() }), exprel.RequiredArity(1), "day(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Hour() }), exprel.RequiredArity(1), "hour(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Minute() }), exprel.RequiredArity(1), "minute(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Second() }), exprel.RequiredArity(1), "second(datetime: Number): Number"),
		exprel.NewFunction(datePart(func(t time.Time) int { return t.Nanosecond() / 1e6 }), exprel.RequiredArity(1), "millisecond(datetime: Number): Number"),
	}
}

// toTime converts a datetime number into a UTC time.
func toTime(v exprel.Value) (time.Time, error) {
	n, ok := v.(exprel.Number)
	if !ok {
		return time.Time{}, errWrongType
	}
	return time.UnixMilli(int64(float64(n) * millisecondsPerDay)).UTC(), nil
}

// fromTime converts a time back into a datetime number.
func fromTime(t time.Time) exprel.Number {
	return exprel.Number(float64(t.UnixMilli()) / millisecondsPerDay)
}

// datePart lifts a component extractor into a single-datetime native
// function.
func datePart(part func(time.Time) int) exprel.NativeFunction {
	return func(args []exprel.Value) (exprel.Value, error) {
		t, err := toTime(args[0])
		if err != nil {
			return nil, err
		}
		return exprel.Number(part(t)), nil
	}
}

// dateToString formats a datetime number with a Go reference layout.
func dateToString(args []exprel.Value) (exprel.Value, error) {
	layout, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	t, err := toTime(args[1])
	if err != nil {
		return nil, err
	}
	return exprel.String(t.Format(string(layout))), nil
}

func parseWith(args []exprel.Value, fallback string) (time.Time, error) {
	s, ok := args[0].(exprel.String)
	if !ok {
		return time.Time{}, errWrongType
	}
	layout, err := defaultString(args, 1, fallback)
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(layout, string(s))
}

func stringToDate(args []exprel.Value) (exprel.Value, error) {
	t, err := parseWith(args, "2006-01-02")
	if err != nil {
		return nil, err
	}
	return fromTime(t), nil
}

// stringToTime parses a clock value; the result carries only the
// day-fraction.
func stringToTime(args []exprel.Value) (exprel.Value, error) {
	t, err := parseWith(args, "15:04:05")
	if err != nil {
		return nil, err
	}
	return clockFraction(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()/1e6), nil
}

func stringToDatetime(args []exprel.Value) (exprel.Value, error) {
	t, err := parseWith(args, "2006-01-02 15:04:05")
	if err != nil {
		return nil, err
	}
	return fromTime(t), nil
}

func dateFromRFC2822(args []exprel.Value) (exprel.Value, error) {
	s, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	t, err := time.Parse(time.RFC1123Z, string(s))
	if err != nil {
		t, err = time.Parse(time.RFC1123, string(s))
	}
	if err != nil {
		return nil, err
	}
	return fromTime(t), nil
}

func dateToRFC2822(args []exprel.Value) (exprel.Value, error) {
	t, err := toTime(args[0])
	if err != nil {
		return nil, err
	}
	return exprel.String(t.Format(time.RFC1123Z)), nil
}

func dateFromRFC3339(args []exprel.Value) (exprel.Value, error) {
	s, ok := args[0].(exprel.String)
	if !ok {
		return nil, errWrongType
	}
	t, err := time.Parse(time.RFC3339, string(s))
	if err != nil {
		return nil, err
	}
	return fromTime(t), nil
}

func dateToRFC3339(args []exprel.Value) (exprel.Value, error) {
	t, err := toTime(args[0])
	if err != nil {
		return nil, err
	}
	return exprel.String(t.Format(time.RFC3339)), nil
}

// dayOfWeek returns 0 for Monday through 6 for Sunday.
func dayOfWeek(args []exprel.Value) (exprel.Value, error) {
	t, err := toTime(args[0])
	if err != nil {
		return nil, err
	}
	return exprel.Number((int(t.Weekday()) + 6) % 7), nil
}

// encodeDate builds a datetime number from a calendar date. Components
// must name a real date; they are not normalized.
func encodeDate(args []exprel.Value) (exprel.Value, error) {
	year, ok1 := args[0].(exprel.Number)
	month, ok2 := args[1].(exprel.Number)
	day, ok3 := args[2].(exprel.Number)
	if !ok1 || !ok2 || !ok3 {
		return nil, errWrongType
	}
	t := time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
	if t.Year() != int(year) || t.Month() != time.Month(month) || t.Day() != int(day) {
		return nil, errors.New("invalid date parameters")
	}
	return fromTime(t), nil
}

// encodeTime builds a day-fraction from clock components.
func encodeTime(args []exprel.Value) (exprel.Value, error) {
	hour, ok1 := args[0].(exprel.Number)
	minute, ok2 := args[1].(exprel.Number)
	second, ok3 := args[2].(exprel.Number)
	if !ok1 || !ok2 || !ok3 {
		return nil, errWrongType
	}
	milli, err := defaultNumber(args, 3, 0)
	if err != nil {
		return nil, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 || milli < 0 || milli > 999 {
		return nil, errors.New("invalid time parameters")
	}
	return clockFraction(int(hour), int(minute), int(second), int(milli)), nil
}

func clockFraction(hour, minute, second, milli int) exprel.Number {
	millis := ((hour*60+minute)*60+second)*1000 + milli
	return exprel.Number(float64(millis) / millisecondsPerDay)
}

// incMonth shifts a datetime by whole months, clamping the day to the
// last day of the target month (January 31 plus one month is the end of
// February).
func incMonth(args []exprel.Value) (exprel.Value, error) {
	t, err := toTime(args[0])
	if err != nil {
		return nil, err
	}
	increment, err := defaultNumber(args, 1, 1)
	if err != nil {
		return nil, err
	}

	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	shifted := first.AddDate(0, int(increment), 0)
	day := t.Day()
	if last := daysInMonth(shifted.Year(), shifted.Month()); day > last {
		day = last
	}
	return fromTime(shifted.AddDate(0, 0, day-1)), nil
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeapYear(args []exprel.Value) (exprel.Value, error) {
	t, err := toTime(args[0])
	if err != nil {
		return nil, err
	}
	year := t.Year()
	return exprel.Boolean(year%4 == 0 && (year%100 != 0 || year%400 == 0)), nil
}
