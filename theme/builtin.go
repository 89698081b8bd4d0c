package theme

var light = Theme{
	Name: "Light Rainbow",
	Colors: [NumRoles]OptionalColor{
		Text:                    Some(0.100, 0.100, 0.100, 1.000),
		WindowBg:                Some(0.243, 0.443, 0.624, 1.000),
		Border:                  Some(0.600, 0.600, 0.600, 1.000),
		BorderShadow:            Some(0.000, 0.000, 0.000, 0.000),
		Button:                  Some(0.902, 0.843, 0.843, 0.875),
		ButtonHovered:           Some(0.824, 0.765, 0.765, 0.875),
		ButtonActive:            Some(0.627, 0.569, 0.569, 0.875),
		FrameBg:                 Some(0.902, 0.843, 0.843, 0.875),
		FrameBgHovered:          Some(0.824, 0.765, 0.765, 0.875),
		FrameBgActive:           Some(0.627, 0.569, 0.569, 0.875),
		TextSelectedBg:          Some(0.260, 0.590, 0.980, 0.350),
		CheckMark:               Some(0.843, 0.000, 0.373, 1.000),
		TitleBg:                 Some(0.243, 0.443, 0.624, 0.850),
		TitleBgActive:           Some(0.165, 0.365, 0.506, 1.000),
		TitleBgCollapsed:        Some(0.243, 0.443, 0.624, 0.850),
		MessagePanel:            Some(0.902, 0.843, 0.843, 0.875),
		AutoCompleteSelected:    Some(0.196, 1.000, 0.196, 1.000),
		AutoCompleteNonSelected: Some(0.000, 0.000, 0.000, 1.000),
		AutoCompleteSeparator:   Some(0.000, 0.000, 0.000, 0.392),
		CmdBacklog:              Some(0.519, 0.118, 0.715, 1.000),
		CmdHistoryCompleted:     Some(1.000, 0.430, 0.059, 1.000),
		LogLevelDropDownListBg:  Some(0.901, 0.843, 0.843, 0.784),
		LogLevelActive:          Some(0.443, 0.705, 1.000, 1.000),
		LogLevelHovered:         Some(0.443, 0.705, 0.784, 0.705),
		LogLevelSelected:        Some(0.443, 0.623, 0.949, 1.000),
		ScrollbarBg:             Some(0.000, 0.000, 0.000, 0.000),
		ScrollbarGrab:           Some(0.470, 0.470, 0.588, 1.000),
		ScrollbarGrabActive:     Some(0.392, 0.392, 0.509, 1.000),
		ScrollbarGrabHovered:    Some(0.509, 0.509, 0.666, 1.000),
	},
	LogLevels: [6]OptionalColor{
		Some(0.078, 0.117, 0.764, 1), // trace
		{},                           // debug
		Some(0.301, 0.529, 0.000, 1), // info
		Some(0.784, 0.431, 0.058, 1), // warning
		Some(0.901, 0.117, 0.117, 1), // error
		Some(0.901, 0.117, 0.117, 1), // critical
	},
}

var cherry = Theme{
	Name: "Dark Cherry",
	Colors: [NumRoles]OptionalColor{
		Text:                    Some(0.649, 0.661, 0.669, 1.000),
		WindowBg:                Some(0.130, 0.140, 0.170, 1.000),
		Border:                  Some(0.310, 0.310, 1.000, 0.000),
		BorderShadow:            Some(0.000, 0.000, 0.000, 0.000),
		Button:                  Some(0.470, 0.770, 0.830, 0.140),
		ButtonHovered:           Some(0.455, 0.198, 0.301, 0.860),
		ButtonActive:            Some(0.455, 0.198, 0.301, 1.000),
		FrameBg:                 Some(0.200, 0.220, 0.270, 1.000),
		FrameBgHovered:          Some(0.455, 0.198, 0.301, 0.780),
		FrameBgActive:           Some(0.455, 0.198, 0.301, 1.000),
		TextSelectedBg:          Some(0.455, 0.198, 0.301, 0.430),
		CheckMark:               Some(0.710, 0.202, 0.207, 1.000),
		TitleBg:                 Some(0.232, 0.201, 0.271, 1.000),
		TitleBgActive:           Some(0.502, 0.075, 0.256, 1.000),
		TitleBgCollapsed:        Some(0.200, 0.220, 0.270, 0.750),
		MessagePanel:            Some(0.100, 0.100, 0.100, 0.500),
		AutoCompleteSelected:    Some(1.000, 1.000, 1.000, 1.000),
		AutoCompleteNonSelected: Some(0.500, 0.450, 0.450, 1.000),
		AutoCompleteSeparator:   Some(0.600, 0.600, 0.600, 1.000),
		CmdBacklog:              Some(0.860, 0.930, 0.890, 1.000),
		CmdHistoryCompleted:     Some(0.153, 0.596, 0.498, 1.000),
		LogLevelDropDownListBg:  Some(0.100, 0.100, 0.100, 0.860),
		LogLevelActive:          Some(0.730, 0.130, 0.370, 1.000),
		LogLevelHovered:         Some(0.450, 0.190, 0.300, 0.430),
		LogLevelSelected:        Some(0.730, 0.130, 0.370, 0.580),
		ScrollbarBg:             Some(0.000, 0.000, 0.000, 0.000),
		ScrollbarGrab:           Some(0.690, 0.690, 0.690, 0.800),
		ScrollbarGrabActive:     Some(0.490, 0.490, 0.490, 0.800),
		ScrollbarGrabHovered:    Some(0.490, 0.490, 0.490, 1.000),
	},
	LogLevels: [6]OptionalColor{
		Some(0.549, 0.561, 0.569, 1), // trace
		Some(0.153, 0.596, 0.498, 1), // debug
		Some(0.459, 0.686, 0.129, 1), // info
		Some(0.839, 0.749, 0.333, 1), // warning
		Some(1.000, 0.420, 0.408, 1), // error
		Some(1.000, 0.420, 0.408, 1), // critical
	},
}
