package internal

// Version is the current version of pinyin-anki
const Version = "0.3.0"
