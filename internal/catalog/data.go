// Copyright (c) 2026 Velora. All rights reserved.
// Author: dev@velora.app

package catalog

// Canned catalog standing in for a licensed metadata feed.

var featuredContent = ContentItem{
	ID:           1,
	Title:        "The Midnight Sky",
	Overview:     "A lone scientist in the Arctic races to contact a crew of astronauts returning home to a mysterious global catastrophe.",
	BackdropPath: "/5UkzNSOK561c2QRy2Zr4AkADzLT.jpg",
	PosterPath:   "/51JcEKuBDm03dW0ow170yHmRoL.jpg",
	ReleaseDate:  "2020-12-10",
	VoteAverage:  6.5,
	VideoURL:     "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
	Gradient:     "#0c4a6e, #1e40af",
}

var genreOrder = []string{"action", "comedy", "drama", "horror", "documentary"}

var contentByGenre = map[string][]ContentItem{
	"action": {
		{ID: 2, Title: "Extraction", PosterPath: "/nygOUcBKPHFTbxsYRFZVePqgPK6.jpg", VoteAverage: 7.5, ReleaseDate: "2020-04-24"},
		{ID: 3, Title: "The Old Guard", PosterPath: "/cjr4NWURcVN3gW5FlHeabgBHLrY.jpg", VoteAverage: 7.1, ReleaseDate: "2020-07-10"},
		{ID: 4, Title: "Project Power", PosterPath: "/TnOeov4w0sTtV2gqICqIxVi74V.jpg", VoteAverage: 6.7, ReleaseDate: "2020-08-14"},
		{ID: 5, Title: "6 Underground", PosterPath: "/lnWkyG3LLgbbrIEeyl5mK5VRFe4.jpg", VoteAverage: 6.1, ReleaseDate: "2019-12-13"},
		{ID: 6, Title: "Spenser Confidential", PosterPath: "/wcKFYIiVDvRURrzglV9kGu7fpfY.jpg", VoteAverage: 6.2, ReleaseDate: "2020-03-06"},
	},
	"comedy": {
		{ID: 7, Title: "The Lovebirds", PosterPath: "/5jdLnvALCzL6yNbLHWSdAUj6B2A.jpg", VoteAverage: 6.5, ReleaseDate: "2020-04-22"},
		{ID: 8, Title: "Eurovision Song Contest", PosterPath: "/lgC7k1S29QhcqQ1x3aSnLlp5hxo.jpg", VoteAverage: 6.9, ReleaseDate: "2020-06-26"},
		{ID: 9, Title: "The Wrong Missy", PosterPath: "/vVpXAG2XtOAJ2kqlW6QU6P4MAL2.jpg", VoteAverage: 6.2, ReleaseDate: "2020-05-13"},
		{ID: 10, Title: "Hubie Halloween", PosterPath: "/vNn7p4qA507kXlK1prLdWKnjE6.jpg", VoteAverage: 5.7, ReleaseDate: "2020-10-07"},
	},
	"drama": {
		{ID: 11, Title: "The Trial of the Chicago 7", PosterPath: "/ahf5cVdoaTjH4mgSYkGabbmI2cy.jpg", VoteAverage: 7.8, ReleaseDate: "2020-09-25"},
		{ID: 12, Title: "Mank", PosterPath: "/x6Hj5Tqhkrt1XhiL4Y9jJbW5Y9O.jpg", VoteAverage: 7.2, ReleaseDate: "2020-11-13"},
		{ID: 13, Title: "The Devil All the Time", PosterPath: "/bV7KUXynB7CYVgSfvaBOncE4AlQ.jpg", VoteAverage: 7.1, ReleaseDate: "2020-09-11"},
		{ID: 14, Title: "Da 5 Bloods", PosterPath: "/6n7ASmQ2JLaO2deNcWbF6F5X0hI.jpg", VoteAverage: 7.1, ReleaseDate: "2020-06-12"},
	},
	"horror": {
		{ID: 15, Title: "His House", PosterPath: "/4gKx7Vdj4hT4MJLqk4j3X2Pg3dL.jpg", VoteAverage: 6.7, ReleaseDate: "2020-10-30"},
		{ID: 16, Title: "The Babysitter: Killer Queen", PosterPath: "/fT5yxT4s8c3u5z4d2KqgFvJmWp2.jpg", VoteAverage: 6.2, ReleaseDate: "2020-09-10"},
		{ID: 17, Title: "Ratched", PosterPath: "/hMQdZcM46HwAW6zVTDw2Yf4Yj3s.jpg", VoteAverage: 7.1, ReleaseDate: "2020-09-18"},
	},
	"documentary": {
		{ID: 18, Title: "The Social Dilemma", PosterPath: "/b6RTi5NHU1azbZ2xMPjP6O9uHzB.jpg", VoteAverage: 8.0, ReleaseDate: "2020-09-09"},
		{ID: 19, Title: "My Octopus Teacher", PosterPath: "/uLlfh4Vk9xR6B2w6nyVW0D9V3lF.jpg", VoteAverage: 8.5, ReleaseDate: "2020-09-07"},
		{ID: 20, Title: "The Last Dance", PosterPath: "/5xR1Moi3Vfux3XrI9UJx2q3q3Q9.jpg", VoteAverage: 9.1, ReleaseDate: "2020-04-19"},
	},
}
