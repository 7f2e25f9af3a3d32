package campaign

const neutralColor = "bg-gray-600"

var statusColors = map[string]string{
	string(StatusActive):    "bg-green-600",
	string(StatusCompleted): "bg-blue-600",
	string(StatusPlanning):  "bg-yellow-600",
	string(StatusOnHold):    "bg-gray-600",
	string(QuestFailed):     "bg-red-600",
}

var priorityColors = map[Priority]string{
	PriorityCritical: "bg-red-600",
	PriorityHigh:     "bg-orange-600",
	PriorityMedium:   "bg-yellow-600",
	PriorityLow:      "bg-green-600",
}

var relationshipColors = map[Relationship]string{
	RelationshipAlly:    "bg-green-600",
	RelationshipEnemy:   "bg-red-600",
	RelationshipNeutral: "bg-yellow-600",
	RelationshipUnknown: "bg-gray-600",
}

// StatusColor maps a campaign or quest status to a color token
func StatusColor(status string) string {
	return colorOr(statusColors[status])
}

func PriorityColor(priority Priority) string {
	return colorOr(priorityColors[priority])
}

func RelationshipColor(relationship Relationship) string {
	return colorOr(relationshipColors[relationship])
}

func colorOr(color string) string {
	if color == "" {
		return neutralColor
	}
	return color
}
