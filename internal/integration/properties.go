package integration

import "strconv"

// Property names exported to build steps.
const (
	PropProject               = "BWProject"
	PropProjectURL            = "BWProjectURL"
	PropWorkingDirectory      = "BWWorkingDirectory"
	PropArtifactDirectory     = "BWArtifactDirectory"
	PropIntegrationStatus     = "BWIntegrationStatus"
	PropLabel                 = "BWLabel"
	PropBuildCondition        = "BWBuildCondition"
	PropNumericLabel          = "BWNumericLabel"
	PropBuildDate             = "BWBuildDate"
	PropBuildTime             = "BWBuildTime"
	PropLastIntegrationStatus = "BWLastIntegrationStatus"
	PropRequestSource         = "BWRequestSource"
)

const (
	buildDateLayout = "2006-01-02"
	buildTimeLayout = "15:04:05"
)

// Property is one name/value pair handed to build steps.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Properties is an ordered property list.
type Properties []Property

// Get returns the value of the named property.
func (p Properties) Get(name string) (string, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Value, true
		}
	}
	return "", false
}

// Map returns the properties as a map, for environment export.
func (p Properties) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, prop := range p {
		m[prop.Name] = prop.Value
	}
	return m
}

// Properties returns the attempt's state as the ordered list of properties
// build steps receive. Build date and time come from the start time.
func (r *Result) Properties() Properties {
	source := ""
	if r.request != nil {
		source = r.request.Source
	}
	return Properties{
		{Name: PropProject, Value: r.projectName},
		{Name: PropProjectURL, Value: r.projectURL},
		{Name: PropWorkingDirectory, Value: r.workingDirectory},
		{Name: PropArtifactDirectory, Value: r.artifactDirectory},
		{Name: PropIntegrationStatus, Value: r.Status().String()},
		{Name: PropLabel, Value: r.label},
		{Name: PropBuildCondition, Value: r.BuildCondition().String()},
		{Name: PropNumericLabel, Value: strconv.Itoa(r.NumericLabel())},
		{Name: PropBuildDate, Value: r.startTime.Format(buildDateLayout)},
		{Name: PropBuildTime, Value: r.startTime.Format(buildTimeLayout)},
		{Name: PropLastIntegrationStatus, Value: r.PreviousStatus().String()},
		{Name: PropRequestSource, Value: source},
	}
}
