package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/eventos/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/markusmobius/go-dateparser"
)

// Field messages, keyed by JSON field name.
const (
	MsgTitleRequired    = "O título é obrigatório"
	MsgDateRequired     = "A data é obrigatória"
	MsgDateInvalid      = "A data informada é inválida"
	MsgLocationRequired = "O local é obrigatório"
)

var requiredMessages = map[string]string{
	"titulo": MsgTitleRequired,
	"data":   MsgDateRequired,
	"local":  MsgLocationRequired,
}

// fieldOrder fixes the order messages are reported in.
var fieldOrder = []string{"titulo", "descricao", "data", "local"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// isoLayouts are tried before falling back to the natural-language parser.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var (
	// isoShape and numericShape are decided by time.Parse alone: a miss on
	// these never reaches dateparser, which would roll 2023-02-30 over.
	isoShape     = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}`)
	numericShape = regexp.MustCompile(`^(\d{1,2})[/.-](\d{1,2})[/.-](\d{4})$`)
	digitRuns    = regexp.MustCompile(`\d+`)
)

// textParser only reads absolute dates ("15 de novembro de 2023"); relative
// words such as "hoje" or "amanhã" are not dates of an event.
var textParser = &dateparser.Parser{
	ParserTypes: []dateparser.ParserType{dateparser.AbsoluteTime},
}

var textParserConfig = &dateparser.Configuration{
	Languages:       []string{"pt", "en"},
	StrictParsing:   true,
	DefaultTimezone: time.UTC,
}

// errInvalidDate is returned by ParseDate for input that is not a date.
var errInvalidDate = errors.New("invalid date")

// ParseDate parses an ISO-8601-like or DD/MM/YYYY date string. Values without
// a zone are taken as UTC. Written dates go through go-dateparser, and the
// result must carry the day and year that appear in the input.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errInvalidDate
	}

	t, err := parseDate(s)
	if err != nil || t.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, s)
	}
	return t.UTC(), nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if isoShape.MatchString(s) {
		return time.Time{}, errInvalidDate
	}

	if m := numericShape.FindStringSubmatch(s); m != nil {
		return time.Parse("2/1/2006", m[1]+"/"+m[2]+"/"+m[3])
	}

	dt, err := textParser.Parse(textParserConfig, s)
	if err != nil || dt.Time.IsZero() {
		return time.Time{}, errInvalidDate
	}
	if !mentions(s, dt.Time.Day()) || !mentions(s, dt.Time.Year()) {
		return time.Time{}, errInvalidDate
	}
	return dt.Time, nil
}

// mentions reports whether n appears as a number in s.
func mentions(s string, n int) bool {
	for _, run := range digitRuns.FindAllString(s, -1) {
		if v, err := strconv.Atoi(run); err == nil && v == n {
			return true
		}
	}
	return false
}

// Validate checks e against the event schema and returns one FieldError per
// invalid field. When fields is non-empty only those JSON fields are checked.
func Validate(e model.Event, fields ...string) []FieldError {
	var err error
	if len(fields) == 0 {
		err = validate.Struct(e)
	} else {
		err = validate.StructPartial(e, structFieldNames(fields)...)
	}
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	byField := make(map[string]FieldError, len(verrs))
	for _, fe := range verrs {
		msg, ok := requiredMessages[fe.Field()]
		if !ok {
			msg = fmt.Sprintf("O campo %s é inválido", fe.Field())
		}
		byField[fe.Field()] = FieldError{Field: fe.Field(), Message: msg}
	}
	return ordered(byField)
}

var jsonToStructField = map[string]string{
	"titulo":    "Title",
	"descricao": "Description",
	"data":      "Date",
	"local":     "Location",
}

func structFieldNames(fields []string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if name, ok := jsonToStructField[f]; ok {
			out = append(out, name)
		}
	}
	return out
}

func ordered(byField map[string]FieldError) []FieldError {
	out := make([]FieldError, 0, len(byField))
	for _, name := range fieldOrder {
		if fe, ok := byField[name]; ok {
			out = append(out, fe)
		}
	}
	return out
}

// eventFromCreate normalizes a create request into an Event and collects
// every schema violation, including date parse failures.
func eventFromCreate(req model.CreateEventRequest) (model.Event, error) {
	e := model.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    strings.TrimSpace(req.Location),
	}

	byField := map[string]FieldError{}
	if strings.TrimSpace(req.Date) != "" {
		date, err := ParseDate(req.Date)
		if err != nil {
			byField["data"] = FieldError{Field: "data", Message: MsgDateInvalid}
		} else {
			e.Date = date
		}
	}

	for _, fe := range Validate(e) {
		if _, seen := byField[fe.Field]; !seen {
			byField[fe.Field] = fe
		}
	}
	if len(byField) > 0 {
		return model.Event{}, &ValidationError{Fields: ordered(byField)}
	}
	return e, nil
}

// patchFromUpdate turns the present fields of an update request into a typed
// patch. The patched fields are validated on a record carrying only those
// fields; the untouched fields were valid when stored, so this decides the
// validity of the merged record.
func patchFromUpdate(req model.UpdateEventRequest) (model.EventPatch, error) {
	var (
		patch   model.EventPatch
		partial model.Event
		present []string
	)
	byField := map[string]FieldError{}

	if req.Title.Set {
		title := strings.TrimSpace(req.Title.Value)
		patch.Title = &title
		partial.Title = title
		present = append(present, "titulo")
	}
	if req.Description.Set {
		patch.Description = req.Description
	}
	if req.Date.Set {
		present = append(present, "data")
		if !req.Date.Null && strings.TrimSpace(req.Date.Value) != "" {
			date, err := ParseDate(req.Date.Value)
			if err != nil {
				byField["data"] = FieldError{Field: "data", Message: MsgDateInvalid}
			} else {
				patch.Date = &date
				partial.Date = date
			}
		}
	}
	if req.Location.Set {
		location := strings.TrimSpace(req.Location.Value)
		patch.Location = &location
		partial.Location = location
		present = append(present, "local")
	}

	if len(present) > 0 {
		for _, fe := range Validate(partial, present...) {
			if _, seen := byField[fe.Field]; !seen {
				byField[fe.Field] = fe
			}
		}
	}
	if len(byField) > 0 {
		return model.EventPatch{}, &ValidationError{Fields: ordered(byField)}
	}
	return patch, nil
}
