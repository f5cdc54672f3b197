package identifier

import (
	"strings"

	"github.com/google/uuid"
)

// Tag is the 3-letter entity tag embedded in generated IDs.
type Tag string

const (
	TagUser              Tag = "usr"
	TagCategory          Tag = "cat"
	TagThread            Tag = "thr"
	TagComment           Tag = "cmt"
	TagMentorship        Tag = "mtr"
	TagEvent             Tag = "evt"
	TagConversation      Tag = "cnv"
	TagMessage           Tag = "msg"
	TagShift             Tag = "sft"
	TagShiftApplication  Tag = "sap"
	TagNotification      Tag = "not"
	TagReport            Tag = "rpt"
	TagFile              Tag = "fil"
	TagAttachment        Tag = "att"
	TagFolder            Tag = "fld"
	TagFolderFile        Tag = "ffd"
	TagAnonymousIdentity Tag = "ani"
	TagPolicyUpdate      Tag = "pol"
	TagEquipmentReview   Tag = "eqp"
	TagResourceTag       Tag = "rtg"
)

// New generates an opaque unique ID in the form <tag>_<random>.
func New(tag Tag) string {
	return string(tag) + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HasTag reports whether id carries the given entity tag prefix.
func HasTag(id string, tag Tag) bool {
	return strings.HasPrefix(id, string(tag)+"_")
}
