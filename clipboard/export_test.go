package clipboard

var DetectWith = detect
