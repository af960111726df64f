package model

// ObjectKind классифицирует объект из таблицы объектов клиента.
type ObjectKind uint8

const (
	KindUnknown   ObjectKind = iota
	KindEventObj             // сундуки и прочие интерактивные объекты
	KindBattleNpc            // мобы, в том числе элементали
)

// String returns a short name for logs.
func (k ObjectKind) String() string {
	switch k {
	case KindEventObj:
		return "event_obj"
	case KindBattleNpc:
		return "battle_npc"
	default:
		return "unknown"
	}
}

// WorldObject — объект рядом с игроком на момент снимка.
// Value type: снимок не меняется после получения.
type WorldObject struct {
	ObjectID uint32     `json:"object_id"`
	DataID   uint32     `json:"data_id"`
	NameID   uint32     `json:"name_id"`
	Kind     ObjectKind `json:"kind"`
	Location Location   `json:"location"`
}

// FindObject returns the object with the given id from objects.
func FindObject(objects []WorldObject, objectID uint32) (WorldObject, bool) {
	if objectID == 0 {
		return WorldObject{}, false
	}
	for _, o := range objects {
		if o.ObjectID == objectID {
			return o, true
		}
	}
	return WorldObject{}, false
}
