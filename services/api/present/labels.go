package present

import (
	"errors"
	"fmt"

	"github.com/02loveslollipop/bikeshare-dashboard/services/api/dataset"
)

// ErrUnmappedCategory matches every UnmappedCategoryError via errors.Is.
var ErrUnmappedCategory = errors.New("unmapped category")

// UnmappedCategoryError is a category code with no display label. It means
// the data does not match the expected schema.
type UnmappedCategoryError struct {
	Kind string
	Code int
}

func (e *UnmappedCategoryError) Error() string {
	return fmt.Sprintf("%s: no %s label for code %d", ErrUnmappedCategory, e.Kind, e.Code)
}

func (e *UnmappedCategoryError) Is(target error) bool { return target == ErrUnmappedCategory }

var seasonLabels = map[dataset.Season]string{
	dataset.Spring: "Spring",
	dataset.Summer: "Summer",
	dataset.Fall:   "Fall",
	dataset.Winter: "Winter",
}

var weatherLabels = map[dataset.Weather]string{
	dataset.Clear:         "Clear",
	dataset.Mist:          "Mist",
	dataset.LightRainSnow: "Light Rain/Snow",
	dataset.HeavyRainSnow: "Heavy Rain/Snow",
}

// SeasonLabel returns the display name of a season code.
func SeasonLabel(s dataset.Season) (string, error) {
	if l, ok := seasonLabels[s]; ok {
		return l, nil
	}
	return "", &UnmappedCategoryError{Kind: "season", Code: int(s)}
}

// WeatherLabel returns the display name of a weather situation code.
func WeatherLabel(w dataset.Weather) (string, error) {
	if l, ok := weatherLabels[w]; ok {
		return l, nil
	}
	return "", &UnmappedCategoryError{Kind: "weather", Code: int(w)}
}
