package service

// ContactColors is the palette badge colors are drawn from.
var ContactColors = []string{
	"#FF7A00", "#FF5EB3", "#6E52FF", "#9327FF", "#00BEE8",
	"#1FD7C1", "#FF745E", "#FFA35E", "#FC71FF", "#FFC701",
	"#0038FF", "#C3FF2B", "#FFE62B", "#FF4646", "#FFBB2B",
}
