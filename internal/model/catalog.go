package model

// SupplyItems is the fixed catalog offered on the request form. The last
// entry lets the requester type a free-text item instead.
var SupplyItems = []string{
	"볼펜",
	"샤프",
	"테이프",
	"지우개",
	"마우스",
	"키보드",
	"기타(직접 입력)",
}
