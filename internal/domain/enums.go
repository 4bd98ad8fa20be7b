package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sex is the biological sex used by the metabolic and FFMI formulas.
type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

// ParseSex accepts "male"/"female" in any case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m":
		return SexMale, nil
	case "female", "f":
		return SexFemale, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// MarshalJSON writes null for an unset or unknown sex.
func (s Sex) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

// UnmarshalJSON normalizes case so "male" and "Male" decode to the same value.
func (s *Sex) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("sex must be a string: %w", err)
	}
	parsed, err := ParseSex(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ActivityLevel is stored as its legacy integer code (1..5).
type ActivityLevel int

const (
	ActivitySedentary        ActivityLevel = 1
	ActivityLightlyActive    ActivityLevel = 2
	ActivityModeratelyActive ActivityLevel = 3
	ActivityVeryActive       ActivityLevel = 4
	ActivityExtremelyActive  ActivityLevel = 5
)

// WeightGoal is stored as its legacy integer code (1..3).
type WeightGoal int

const (
	GoalLoseWeight     WeightGoal = 1
	GoalMaintainWeight WeightGoal = 2
	GoalGainWeight     WeightGoal = 3
)

// MealBucket is stored as its legacy integer code (0..3).
type MealBucket int

const (
	MealBreakfast MealBucket = 0
	MealLunch     MealBucket = 1
	MealDinner    MealBucket = 2
	MealSnack     MealBucket = 3
)

// MealBuckets lists the four fixed buckets in display order.
var MealBuckets = []MealBucket{MealBreakfast, MealLunch, MealDinner, MealSnack}

// enumEntry is one row of a wire mapping table.
type enumEntry struct {
	code int
	name string
}

// Wire tables. These are the only place where codes and names are paired;
// everything else (JSON, BSON, CLI flags, query params) goes through them.
var (
	activityLevelTable = []enumEntry{
		{int(ActivitySedentary), "Sedentary"},
		{int(ActivityLightlyActive), "LightlyActive"},
		{int(ActivityModeratelyActive), "ModeratelyActive"},
		{int(ActivityVeryActive), "VeryActive"},
		{int(ActivityExtremelyActive), "ExtremelyActive"},
	}
	weightGoalTable = []enumEntry{
		{int(GoalLoseWeight), "LoseWeight"},
		{int(GoalMaintainWeight), "MaintainWeight"},
		{int(GoalGainWeight), "GainWeight"},
	}
	mealBucketTable = []enumEntry{
		{int(MealBreakfast), "Breakfast"},
		{int(MealLunch), "Lunch"},
		{int(MealDinner), "Dinner"},
		{int(MealSnack), "Snack"},
	}
)

func nameForCode(table []enumEntry, code int) (string, bool) {
	for _, e := range table {
		if e.code == code {
			return e.name, true
		}
	}
	return "", false
}

// codeFor resolves either a name (case-insensitive) or a decimal code.
func codeFor(table []enumEntry, s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		_, ok := nameForCode(table, n)
		return n, ok
	}
	for _, e := range table {
		if strings.EqualFold(e.name, s) {
			return e.code, true
		}
	}
	return 0, false
}

var errNullEnum = errors.New("null enum")

// decodeEnumJSON accepts both `"LoseWeight"` and the legacy `1`.
func decodeEnumJSON(table []enumEntry, kind string, b []byte) (int, error) {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return 0, fmt.Errorf("invalid %s: %w", kind, err)
	}
	var text string
	switch v := raw.(type) {
	case nil:
		return 0, errNullEnum
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return 0, fmt.Errorf("invalid %s: %s", kind, string(b))
	}
	code, ok := codeFor(table, text)
	if !ok {
		return 0, fmt.Errorf("unknown %s %q", kind, text)
	}
	return code, nil
}

// encodeEnumJSON writes unset (zero or unknown) codes as null.
func encodeEnumJSON(table []enumEntry, code int) ([]byte, error) {
	name, ok := nameForCode(table, code)
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(name)
}

// ParseActivityLevel accepts "ModeratelyActive" or "3".
func ParseActivityLevel(s string) (ActivityLevel, error) {
	code, ok := codeFor(activityLevelTable, s)
	if !ok {
		return 0, fmt.Errorf("unknown activity level %q", s)
	}
	return ActivityLevel(code), nil
}

func (a ActivityLevel) Valid() bool {
	_, ok := nameForCode(activityLevelTable, int(a))
	return ok
}

func (a ActivityLevel) String() string {
	if name, ok := nameForCode(activityLevelTable, int(a)); ok {
		return name
	}
	return "ActivityLevel(" + strconv.Itoa(int(a)) + ")"
}

func (a ActivityLevel) MarshalJSON() ([]byte, error) {
	return encodeEnumJSON(activityLevelTable, int(a))
}

func (a *ActivityLevel) UnmarshalJSON(b []byte) error {
	code, err := decodeEnumJSON(activityLevelTable, "activity level", b)
	if errors.Is(err, errNullEnum) {
		return nil
	}
	if err != nil {
		return err
	}
	*a = ActivityLevel(code)
	return nil
}

// ParseWeightGoal accepts "LoseWeight" or "1".
func ParseWeightGoal(s string) (WeightGoal, error) {
	code, ok := codeFor(weightGoalTable, s)
	if !ok {
		return 0, fmt.Errorf("unknown weight goal %q", s)
	}
	return WeightGoal(code), nil
}

func (g WeightGoal) Valid() bool {
	_, ok := nameForCode(weightGoalTable, int(g))
	return ok
}

func (g WeightGoal) String() string {
	if name, ok := nameForCode(weightGoalTable, int(g)); ok {
		return name
	}
	return "WeightGoal(" + strconv.Itoa(int(g)) + ")"
}

func (g WeightGoal) MarshalJSON() ([]byte, error) {
	return encodeEnumJSON(weightGoalTable, int(g))
}

func (g *WeightGoal) UnmarshalJSON(b []byte) error {
	code, err := decodeEnumJSON(weightGoalTable, "weight goal", b)
	if errors.Is(err, errNullEnum) {
		return nil
	}
	if err != nil {
		return err
	}
	*g = WeightGoal(code)
	return nil
}

// ParseMealBucket accepts "Lunch" or "1".
func ParseMealBucket(s string) (MealBucket, error) {
	code, ok := codeFor(mealBucketTable, s)
	if !ok {
		return 0, fmt.Errorf("unknown meal %q", s)
	}
	return MealBucket(code), nil
}

func (m MealBucket) Valid() bool {
	_, ok := nameForCode(mealBucketTable, int(m))
	return ok
}

func (m MealBucket) String() string {
	if name, ok := nameForCode(mealBucketTable, int(m)); ok {
		return name
	}
	return "MealBucket(" + strconv.Itoa(int(m)) + ")"
}

func (m MealBucket) MarshalJSON() ([]byte, error) {
	return encodeEnumJSON(mealBucketTable, int(m))
}

func (m *MealBucket) UnmarshalJSON(b []byte) error {
	code, err := decodeEnumJSON(mealBucketTable, "meal", b)
	if errors.Is(err, errNullEnum) {
		return nil
	}
	if err != nil {
		return err
	}
	*m = MealBucket(code)
	return nil
}

// Period selects the look-back window of a weight trend.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Periods lists every supported trend window, shortest first.
var Periods = []Period{PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear}

var periodDays = map[Period]int{
	PeriodWeek:    7,
	PeriodMonth:   30,
	PeriodQuarter: 90,
	PeriodYear:    365,
}

// ParsePeriod accepts the wire names in any case.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := periodDays[p]; !ok {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}

// Days returns the window length. Unknown periods fall back to a week.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return periodDays[PeriodWeek]
}

// TrendDirection classifies a weight change.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// BMICategory is the WHO weight band for a BMI value.
type BMICategory string

const (
	BMIUnderweight   BMICategory = "Underweight"
	BMINormal        BMICategory = "Normal"
	BMIOverweight    BMICategory = "Overweight"
	BMIObeseClassI   BMICategory = "Obese Class I"
	BMIObeseClassII  BMICategory = "Obese Class II"
	BMIObeseClassIII BMICategory = "Obese Class III"
)

// FFMICategory ranks a fat-free mass index.
type FFMICategory string

const (
	FFMIBelowAverage FFMICategory = "Below Average"
	FFMIAverage      FFMICategory = "Average"
	FFMIAboveAverage FFMICategory = "Above Average"
	FFMIExcellent    FFMICategory = "Excellent"
	FFMISuperior     FFMICategory = "Superior"
)
