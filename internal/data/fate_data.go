package data

import "fmt"

// Fate is an immutable encounter template.
type Fate struct {
	FateID    uint16
	Name      string
	ShortName string
	MapX      float32 // map coordinate, 1-based
	MapY      float32
	TrackerID uint16
}

// IsEmpty reports whether f is the zero template.
func (f Fate) IsEmpty() bool {
	return f.FateID == 0
}

// HasTracker reports whether the external tracker knows this fate.
func (f Fate) HasTracker() bool {
	return f.TrackerID != 0 && f.TrackerID != NoTrackerID
}

// DisplayName returns ShortName when short is set and one is defined.
func (f Fate) DisplayName(short bool) string {
	if short && f.ShortName != "" {
		return f.ShortName
	}
	return f.Name
}

// MapLink renders the map position the way chat shows a flag.
func (f Fate) MapLink() string {
	return fmt.Sprintf("(%.1f, %.1f)", f.MapX, f.MapY)
}

// FateByID looks a fate up in the catalog of territory.
func FateByID(territory, fateID uint16) (Fate, bool) {
	for _, f := range FatesFor(territory) {
		if f.FateID == fateID {
			return f, true
		}
	}
	for _, f := range BunniesFor(territory) {
		if f.FateID == fateID {
			return f, true
		}
	}
	return Fate{}, false
}

var anemosFates = []Fate{
	{FateID: 1328, Name: "Sabotender Corrido", ShortName: "Sabo", MapX: 14.0, MapY: 22.3, TrackerID: 1},
	{FateID: 1329, Name: "The Lord of Anemos", ShortName: "Lord", MapX: 29.8, MapY: 27.1, TrackerID: 2},
	{FateID: 1330, Name: "Teles", ShortName: "Teles", MapX: 25.9, MapY: 27.5, TrackerID: 3},
	{FateID: 1331, Name: "The Emperor of Anemos", ShortName: "Emperor", MapX: 17.0, MapY: 22.0, TrackerID: 4},
	{FateID: 1332, Name: "Callisto", ShortName: "Callisto", MapX: 25.8, MapY: 22.8, TrackerID: 5},
	{FateID: 1333, Name: "Number", ShortName: "Number", MapX: 23.6, MapY: 22.4, TrackerID: 6},
	{FateID: 1334, Name: "Jahannam", ShortName: "Jaha", MapX: 17.6, MapY: 18.7, TrackerID: 7},
	{FateID: 1335, Name: "Amemet", ShortName: "Amemet", MapX: 15.0, MapY: 15.6, TrackerID: 8},
	{FateID: 1336, Name: "Caym", ShortName: "Caym", MapX: 13.8, MapY: 12.4, TrackerID: 9},
	{FateID: 1337, Name: "Bombadeel", ShortName: "Bomba", MapX: 28.3, MapY: 20.4, TrackerID: 10},
	{FateID: 1338, Name: "Serket", ShortName: "Serket", MapX: 24.8, MapY: 17.9, TrackerID: 11},
	{FateID: 1339, Name: "Judgmental Julika", ShortName: "Julika", MapX: 21.9, MapY: 15.6, TrackerID: 12},
	{FateID: 1340, Name: "The White Rider", ShortName: "Rider", MapX: 20.3, MapY: 13.0, TrackerID: 13},
	{FateID: 1341, Name: "Polyphemus", ShortName: "Poly", MapX: 26.4, MapY: 14.3, TrackerID: 14},
	{FateID: 1342, Name: "Simurgh's Strider", ShortName: "Strider", MapX: 28.6, MapY: 13.0, TrackerID: 15},
	{FateID: 1343, Name: "King Hazmat", ShortName: "Hazmat", MapX: 35.3, MapY: 18.3, TrackerID: 16},
	{FateID: 1344, Name: "Fafnir", ShortName: "Fafnir", MapX: 35.5, MapY: 21.5, TrackerID: 17},
	{FateID: 1345, Name: "Amarok", ShortName: "Amarok", MapX: 7.6, MapY: 18.2, TrackerID: 18},
	{FateID: 1346, Name: "Lamashtu", ShortName: "Lamashtu", MapX: 7.7, MapY: 23.3, TrackerID: 19},
	{FateID: 1347, Name: "Pazuzu", ShortName: "Paz", MapX: 7.4, MapY: 21.7, TrackerID: 20},
}

var pagosFates = []Fate{
	{FateID: 1351, Name: "The Snow Queen", ShortName: "Queen", MapX: 21.7, MapY: 26.3, TrackerID: 21},
	{FateID: 1352, Name: "Taxim", ShortName: "Taxim", MapX: 25.5, MapY: 28.3, TrackerID: 22},
	{FateID: 1353, Name: "Ash Dragon", ShortName: "Dragon", MapX: 29.7, MapY: 29.8, TrackerID: 23},
	{FateID: 1354, Name: "Glavoid", ShortName: "Glavoid", MapX: 33.0, MapY: 24.0, TrackerID: 24},
	{FateID: 1355, Name: "Anapos", ShortName: "Anapos", MapX: 35.0, MapY: 19.3, TrackerID: 25},
	{FateID: 1356, Name: "Hakutaku", ShortName: "Haku", MapX: 28.3, MapY: 16.4, TrackerID: 26},
	{FateID: 1357, Name: "King Igloo", ShortName: "Igloo", MapX: 17.8, MapY: 15.9, TrackerID: 27},
	{FateID: 1358, Name: "Asag", ShortName: "Asag", MapX: 10.9, MapY: 10.9, TrackerID: 28},
	{FateID: 1359, Name: "Surabhi", ShortName: "Surabhi", MapX: 10.0, MapY: 20.1, TrackerID: 29},
	{FateID: 1360, Name: "King Arthro", ShortName: "Arthro", MapX: 8.7, MapY: 15.4, TrackerID: 30},
	{FateID: 1361, Name: "Mindertaur/Eldertaur", ShortName: "Brothers", MapX: 13.5, MapY: 21.4, TrackerID: 31},
	{FateID: 1362, Name: "Holy Cow", ShortName: "Cow", MapX: 26.5, MapY: 21.4, TrackerID: 32},
	{FateID: 1363, Name: "Hadhayosh", ShortName: "Behe", MapX: 31.3, MapY: 18.4, TrackerID: 33},
	{FateID: 1364, Name: "Horus", ShortName: "Horus", MapX: 26.1, MapY: 17.5, TrackerID: 34},
	{FateID: 1365, Name: "Arch Angra Mainyu", ShortName: "Mainyu", MapX: 24.2, MapY: 23.6, TrackerID: 35},
	{FateID: 1366, Name: "Copycat Cassie", ShortName: "Cassie", MapX: 24.9, MapY: 11.7, TrackerID: 36},
	{FateID: 1367, Name: "Louhi", ShortName: "Louhi", MapX: 36.0, MapY: 13.0, TrackerID: 37},
}

var pyrosFates = []Fate{
	{FateID: 1388, Name: "Leucosia", ShortName: "Leucosia", MapX: 26.8, MapY: 26.2, TrackerID: 38},
	{FateID: 1389, Name: "Flauros", ShortName: "Flauros", MapX: 29.3, MapY: 29.6, TrackerID: 39},
	{FateID: 1390, Name: "The Sophist", ShortName: "Sophist", MapX: 31.0, MapY: 31.7, TrackerID: 40},
	{FateID: 1391, Name: "Graffiacane", ShortName: "Doll", MapX: 22.6, MapY: 33.9, TrackerID: 41},
	{FateID: 1392, Name: "Askalaph", ShortName: "Owl", MapX: 10.4, MapY: 31.2, TrackerID: 42},
	{FateID: 1393, Name: "Grand Duke Batym", ShortName: "Batym", MapX: 13.4, MapY: 36.2, TrackerID: 43},
	{FateID: 1394, Name: "Aetolus", ShortName: "Aetolus", MapX: 12.4, MapY: 27.0, TrackerID: 44},
	{FateID: 1395, Name: "Lesath", ShortName: "Lesath", MapX: 12.5, MapY: 22.9, TrackerID: 45},
	{FateID: 1396, Name: "Eldthurs", ShortName: "Eldthurs", MapX: 17.2, MapY: 20.1, TrackerID: 46},
	{FateID: 1397, Name: "Iris", ShortName: "Iris", MapX: 24.5, MapY: 22.7, TrackerID: 47},
	{FateID: 1398, Name: "Lamebrix Strikebocks", ShortName: "Lamebrix", MapX: 21.4, MapY: 16.5, TrackerID: 48},
	{FateID: 1399, Name: "Dux", ShortName: "Dux", MapX: 24.0, MapY: 14.2, TrackerID: 49},
	{FateID: 1400, Name: "Lumber Jack", ShortName: "Jack", MapX: 29.6, MapY: 10.8, TrackerID: 50},
	{FateID: 1401, Name: "Glaukopis", ShortName: "Glaukopis", MapX: 32.2, MapY: 14.8, TrackerID: 51},
	{FateID: 1402, Name: "Ying-Yang", ShortName: "YY", MapX: 11.2, MapY: 12.9, TrackerID: 52},
	{FateID: 1403, Name: "Skoll", ShortName: "Skoll", MapX: 7.9, MapY: 14.9, TrackerID: 53},
	{FateID: 1404, Name: "Penthesilea", ShortName: "Penny", MapX: 36.3, MapY: 6.2, TrackerID: 54},
}

var hydatosFates = []Fate{
	{FateID: 1412, Name: "Khalamari", ShortName: "Khalamari", MapX: 11.2, MapY: 25.8, TrackerID: 55},
	{FateID: 1413, Name: "Stegodon", ShortName: "Stego", MapX: 9.0, MapY: 17.6, TrackerID: 56},
	{FateID: 1414, Name: "Molech", ShortName: "Molech", MapX: 8.6, MapY: 20.7, TrackerID: 57},
	{FateID: 1415, Name: "Piasa", ShortName: "Piasa", MapX: 6.3, MapY: 16.8, TrackerID: 58},
	{FateID: 1416, Name: "Frostmane", ShortName: "Frostmane", MapX: 7.4, MapY: 24.1, TrackerID: 59},
	{FateID: 1417, Name: "Daphne", ShortName: "Daphne", MapX: 25.2, MapY: 16.4, TrackerID: 60},
	{FateID: 1418, Name: "King Goldemar", ShortName: "Golde", MapX: 28.9, MapY: 23.2, TrackerID: 61},
	{FateID: 1419, Name: "Leuke", ShortName: "Leuke", MapX: 37.1, MapY: 26.5, TrackerID: 62},
	{FateID: 1420, Name: "Barong", ShortName: "Barong", MapX: 32.0, MapY: 24.0, TrackerID: 63},
	{FateID: 1421, Name: "Ceto", ShortName: "Ceto", MapX: 36.5, MapY: 13.8, TrackerID: 64},
	{FateID: 1422, Name: "Provenance Watcher", ShortName: "PW", MapX: 33.9, MapY: 21.6, TrackerID: 65},
	{FateID: 1423, Name: "Ovni", ShortName: "Ovni", MapX: 27.0, MapY: 28.9, TrackerID: NoTrackerID},
}

// Bunny fates. The first entry of every zone is the low level one
// ("only easy bunny" shows just that one).
var pagosBunnies = []Fate{
	{FateID: 1368, Name: "Down the Rabbit Hole", ShortName: "Bunny", MapX: 20.1, MapY: 23.9, TrackerID: NoTrackerID},
	{FateID: 1369, Name: "Haunted Hares", ShortName: "Bunny 2", MapX: 30.4, MapY: 14.8, TrackerID: NoTrackerID},
}

var pyrosBunnies = []Fate{
	{FateID: 1407, Name: "Hare Today", ShortName: "Bunny", MapX: 20.2, MapY: 30.1, TrackerID: NoTrackerID},
	{FateID: 1408, Name: "Bunny Business", ShortName: "Bunny 2", MapX: 19.3, MapY: 13.5, TrackerID: NoTrackerID},
}

var hydatosBunnies = []Fate{
	{FateID: 1425, Name: "Tender Rabbit", ShortName: "Bunny", MapX: 20.3, MapY: 19.1, TrackerID: NoTrackerID},
}
